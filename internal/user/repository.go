package user

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"

	"learnhub/internal/cerrors"
)

// Repository encapsulates the logic to access users from a database.
type Repository interface {
	// Get returns the user corresponding to the specified user ID.
	Get(ctx context.Context, userID string) (*User, error)
	// Create saves a new user into the database. Returns a conflict error if
	// a user with the same ID already exists.
	Create(ctx context.Context, u *User) error
	// Update applies a partial update; nil fields are left untouched.
	Update(ctx context.Context, userID string, upd *Update) error
	// Delete removes the user record. Deleting an absent user is not an error.
	Delete(ctx context.Context, userID string) error
}

type firebaseRepository struct {
	firestoreClient *firestore.Client
}

// NewFirebaseRepository creates a new user repository with Firestore as the
// database.
func NewFirebaseRepository(client *firestore.Client) Repository {
	return &firebaseRepository{firestoreClient: client}
}

func (r *firebaseRepository) Get(ctx context.Context, userID string) (*User, error) {
	doc, err := r.firestoreClient.Collection(FirestoreUsersCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, cerrors.Classify(err)
	}

	var u User
	if err := mapstructure.Decode(doc.Data(), &u); err != nil {
		return nil, fmt.Errorf("error destructuring user document: %v", err)
	}

	u.ID = doc.Ref.ID
	if u.EnrolledCourses == nil {
		u.EnrolledCourses = []string{}
	}

	return &u, nil
}

func (r *firebaseRepository) Create(ctx context.Context, u *User) error {
	_, err := r.firestoreClient.Collection(FirestoreUsersCollection).Doc(u.ID).Create(ctx, map[string]interface{}{
		"id":              u.ID,
		"email":           u.Email,
		"name":            u.Name,
		"imageUrl":        u.ImageURL,
		"enrolledCourses": []string{},
	})

	return cerrors.Classify(err)
}

func (r *firebaseRepository) Update(ctx context.Context, userID string, upd *Update) error {
	var updates []firestore.Update
	if upd.Email != nil {
		updates = append(updates, firestore.Update{Path: "email", Value: *upd.Email})
	}
	if upd.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *upd.Name})
	}
	if upd.ImageURL != nil {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: *upd.ImageURL})
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := r.firestoreClient.Collection(FirestoreUsersCollection).Doc(userID).Update(ctx, updates)

	return cerrors.Classify(err)
}

func (r *firebaseRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.firestoreClient.Collection(FirestoreUsersCollection).Doc(userID).Delete(ctx)

	return cerrors.Classify(err)
}
