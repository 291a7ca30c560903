package main

import (
	"context"
	"flag"
	"log"

	"learnhub/internal/auth"
	"learnhub/internal/config"
	"learnhub/internal/course"
	"learnhub/internal/educator"
	"learnhub/internal/firebase"
	"learnhub/internal/progress"
	"learnhub/internal/purchase"
	"learnhub/internal/rating"
	"learnhub/internal/server"
	"learnhub/internal/user"
)

func main() {
	flag.Parse()

	cfg := config.Load()

	ctx := context.Background()
	firestoreClient, err := firebase.NewFirestoreClient(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Panicf("Error creating Firestore client: %v\n", err)
	}
	log.Printf("✅ Successfully created Firestore client")

	courseRepo := course.NewFirebaseRepository(firestoreClient)
	userRepo := user.NewFirebaseRepository(firestoreClient)
	purchaseRepo := purchase.NewFirebaseRepository(firestoreClient)
	progressRepo := progress.NewFirebaseRepository(firestoreClient)
	ratingRepo := rating.NewFirebaseRepository(firestoreClient)

	provider := purchase.NewHTTPProvider(cfg.PaymentProviderURL, cfg.PaymentProviderKey, cfg.ProviderTimeout)
	verifier := auth.NewHTTPVerifier(cfg.IdentityProviderURL, cfg.ProviderTimeout)

	courses := course.NewService(courseRepo)

	services := server.Services{
		Verifier:   verifier,
		Courses:    courses,
		Users:      user.NewService(userRepo),
		Purchases:  purchase.NewService(purchaseRepo, provider, courses),
		Reconciler: purchase.NewReconciler(purchaseRepo, provider),
		Progress:   progress.NewService(progressRepo, courses),
		Ratings:    rating.NewService(ratingRepo),
		Educator:   educator.NewService(courseRepo, purchaseRepo, userRepo),
	}

	server.Start(cfg, services)
}
