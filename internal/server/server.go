package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"learnhub/internal/auth"
	"learnhub/internal/config"
	"learnhub/internal/course"
	"learnhub/internal/educator"
	"learnhub/internal/progress"
	"learnhub/internal/purchase"
	"learnhub/internal/rating"
	"learnhub/internal/user"
	"learnhub/internal/webhook"
)

// Services bundles the wired service objects the router mounts. Everything is
// passed explicitly; the server holds no globals.
type Services struct {
	Verifier   auth.TokenVerifier
	Courses    *course.Service
	Users      *user.Service
	Purchases  *purchase.Service
	Reconciler *purchase.Reconciler
	Progress   *progress.Service
	Ratings    *rating.Service
	Educator   *educator.Service
}

func Routes(cfg *config.ServerConfig, svc Services) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Logger, // Log API Request Calls
	)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API is working"))
	})

	router.Route("/webhooks", func(r chi.Router) {
		r.Mount("/", webhook.Routes(cfg.PaymentWebhookSecret, cfg.IdentityWebhookSecret, svc.Reconciler, svc.Users))
	})

	router.Route("/v1", func(r chi.Router) {
		r.Mount("/courses", course.Routes(svc.Courses, svc.Users, svc.Verifier))
		r.Mount("/users", user.Routes(svc.Users, svc.Courses, svc.Verifier))
		r.Mount("/purchases", purchase.Routes(svc.Purchases, svc.Verifier))
		r.Mount("/progress", progress.Routes(svc.Progress, svc.Verifier))
		r.Mount("/ratings", rating.Routes(svc.Ratings, svc.Verifier))
		r.Mount("/educator", educator.Routes(svc.Educator, svc.Verifier))
		r.Mount("/admin", purchase.AdminRoutes(svc.Reconciler, svc.Verifier))
	})

	return router
}

func Start(cfg *config.ServerConfig, svc Services) {
	router := Routes(cfg, svc)
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedHeaders:   []string{"Authorization", "Content-Type", webhook.SignatureHeader},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PATCH"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)
	log.Printf("Server is listening on port %v\n", cfg.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", cfg.Port), handler))
}
