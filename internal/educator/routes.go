package educator

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"learnhub/internal/auth"
)

type handler struct {
	service *Service
}

func Routes(service *Service, verifier auth.TokenVerifier) *chi.Mux {
	h := &handler{service: service}

	router := chi.NewRouter()
	router.Use(auth.RequireAuth(verifier))
	router.Get("/dashboard", h.dashboardHandler)
	router.Get("/students", h.studentsHandler)

	return router
}

// GET: /dashboard
func (h *handler) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), callerID)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not build dashboard"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "dashboard": dashboard})
}

// GET: /students
func (h *handler) studentsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	enrollments, err := h.service.ListEnrollments(r.Context(), callerID)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not list enrollments"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "enrolledStudents": enrollments})
}
