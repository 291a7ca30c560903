package progress

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"

	"learnhub/internal/cerrors"
)

// Repository encapsulates the logic to access progress records from a
// database.
type Repository interface {
	// MarkComplete idempotently adds the lecture to the user's completed set
	// for the course, creating the record if absent.
	MarkComplete(ctx context.Context, userID string, courseID string, lectureID string) error
	// CompletedLectures returns the user's completed lecture ids for the
	// course. A missing record yields an empty set, not an error.
	CompletedLectures(ctx context.Context, userID string, courseID string) ([]string, error)
}

type firebaseRepository struct {
	firestoreClient *firestore.Client
}

// NewFirebaseRepository creates a new progress repository with Firestore as
// the database.
func NewFirebaseRepository(client *firestore.Client) Repository {
	return &firebaseRepository{firestoreClient: client}
}

func (r *firebaseRepository) MarkComplete(ctx context.Context, userID string, courseID string, lectureID string) error {
	_, err := r.firestoreClient.Collection(FirestoreProgressCollection).Doc(RecordID(userID, courseID)).Set(ctx, map[string]interface{}{
		"userId":            userID,
		"courseId":          courseID,
		"completedLectures": firestore.ArrayUnion(lectureID),
	}, firestore.MergeAll)

	return cerrors.Classify(err)
}

func (r *firebaseRepository) CompletedLectures(ctx context.Context, userID string, courseID string) ([]string, error) {
	doc, err := r.firestoreClient.Collection(FirestoreProgressCollection).Doc(RecordID(userID, courseID)).Get(ctx)
	if err != nil {
		err = cerrors.Classify(err)
		if cerrors.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var record Record
	if err := mapstructure.Decode(doc.Data(), &record); err != nil {
		return nil, fmt.Errorf("error destructuring progress document: %v", err)
	}
	if record.CompletedLectures == nil {
		record.CompletedLectures = []string{}
	}

	return record.CompletedLectures, nil
}
