package rating

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"

	"learnhub/internal/cerrors"
	"learnhub/internal/course"
)

// Repository encapsulates access to the rating entries stored on course
// documents.
type Repository interface {
	// Ratings returns the current rating entries for the course.
	Ratings(ctx context.Context, courseID string) ([]course.Rating, error)
	// SetRating replaces the user's rating entry for the course, or appends
	// one if none exists. Never produces two entries for the same user.
	SetRating(ctx context.Context, courseID string, userID string, value int) error
}

type firebaseRepository struct {
	firestoreClient *firestore.Client
}

// NewFirebaseRepository creates a new rating repository with Firestore as the
// database.
func NewFirebaseRepository(client *firestore.Client) Repository {
	return &firebaseRepository{firestoreClient: client}
}

func (r *firebaseRepository) Ratings(ctx context.Context, courseID string) ([]course.Rating, error) {
	doc, err := r.firestoreClient.Collection(course.FirestoreCoursesCollection).Doc(courseID).Get(ctx)
	if err != nil {
		return nil, cerrors.Classify(err)
	}

	return decodeRatings(doc.Data()["ratings"])
}

// SetRating rewrites the ratings array inside a transaction so two concurrent
// ratings by the same user collapse to a single entry.
func (r *firebaseRepository) SetRating(ctx context.Context, courseID string, userID string, value int) error {
	ref := r.firestoreClient.Collection(course.FirestoreCoursesCollection).Doc(courseID)
	err := r.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return cerrors.Classify(err)
		}

		ratings, err := decodeRatings(doc.Data()["ratings"])
		if err != nil {
			return err
		}

		ratings = Replace(ratings, userID, value)

		entries := make([]map[string]interface{}, len(ratings))
		for i, rating := range ratings {
			entries[i] = map[string]interface{}{
				"userId": rating.UserID,
				"value":  rating.Value,
			}
		}

		return tx.Update(ref, []firestore.Update{{Path: "ratings", Value: entries}})
	})

	return cerrors.Classify(err)
}

func decodeRatings(data interface{}) ([]course.Rating, error) {
	if data == nil {
		return []course.Rating{}, nil
	}

	var ratings []course.Rating
	if err := mapstructure.Decode(data, &ratings); err != nil {
		return nil, fmt.Errorf("error destructuring ratings: %v", err)
	}

	return ratings, nil
}
