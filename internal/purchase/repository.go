package purchase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"

	"learnhub/internal/cerrors"
	"learnhub/internal/course"
	"learnhub/internal/user"
)

// Repository is the reconciler's store. It spans the purchase records and the
// two enrollment-edge arrays they derive: the user's enrolledCourses and the
// course's enrolledStudents.
type Repository interface {
	// Create saves a new pending purchase into the database.
	Create(ctx context.Context, p *Purchase) error
	// Get returns the purchase corresponding to the specified purchase ID.
	Get(ctx context.Context, purchaseID string) (*Purchase, error)
	// Complete transitions pending → completed, guarded on the currently
	// stored status. Returns a conflict error if the purchase is no longer
	// pending.
	Complete(ctx context.Context, purchaseID string) error
	// Fail transitions pending → failed and stores the failure reason, with
	// the same guard as Complete.
	Fail(ctx context.Context, purchaseID string, reason string) error
	// ListCompleted returns all completed purchases, for the repair sweep.
	ListCompleted(ctx context.Context) ([]*Purchase, error)

	// AddEnrolledCourse idempotently appends the course to the user's
	// enrollment list.
	AddEnrolledCourse(ctx context.Context, userID string, courseID string) error
	// HasEnrolledCourse reports whether the user's enrollment list contains
	// the course.
	HasEnrolledCourse(ctx context.Context, userID string, courseID string) (bool, error)
	// AddEnrolledStudent idempotently appends the user to the course's
	// enrolled-student list.
	AddEnrolledStudent(ctx context.Context, courseID string, userID string) error
	// HasEnrolledStudent reports whether the course's enrolled-student list
	// contains the user.
	HasEnrolledStudent(ctx context.Context, courseID string, userID string) (bool, error)
}

type firebaseRepository struct {
	firestoreClient *firestore.Client
}

// NewFirebaseRepository creates a new purchase repository with Firestore as
// the database.
func NewFirebaseRepository(client *firestore.Client) Repository {
	return &firebaseRepository{firestoreClient: client}
}

func (r *firebaseRepository) Create(ctx context.Context, p *Purchase) error {
	_, err := r.firestoreClient.Collection(FirestorePurchasesCollection).Doc(p.ID).Create(ctx, map[string]interface{}{
		"id":        p.ID,
		"userId":    p.UserID,
		"courseId":  p.CourseID,
		"amount":    p.Amount,
		"status":    string(p.Status),
		"createdAt": p.CreatedAt,
	})

	return cerrors.Classify(err)
}

func (r *firebaseRepository) Get(ctx context.Context, purchaseID string) (*Purchase, error) {
	doc, err := r.firestoreClient.Collection(FirestorePurchasesCollection).Doc(purchaseID).Get(ctx)
	if err != nil {
		return nil, cerrors.Classify(err)
	}

	return decodePurchase(doc)
}

// Complete runs the compare-and-swap inside a Firestore transaction so that
// concurrent duplicate deliveries racing on the transition serialize, and
// exactly one observes the pending state.
func (r *firebaseRepository) Complete(ctx context.Context, purchaseID string) error {
	ref := r.firestoreClient.Collection(FirestorePurchasesCollection).Doc(purchaseID)
	err := r.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		p, err := txGetPurchase(tx, ref)
		if err != nil {
			return err
		}
		if p.Status != StatusPending {
			return fmt.Errorf("purchase %s already %s: %w", purchaseID, p.Status, cerrors.ErrConflict)
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(StatusCompleted)},
			{Path: "completedAt", Value: time.Now().UTC()},
		})
	})

	return cerrors.Classify(err)
}

func (r *firebaseRepository) Fail(ctx context.Context, purchaseID string, reason string) error {
	ref := r.firestoreClient.Collection(FirestorePurchasesCollection).Doc(purchaseID)
	err := r.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		p, err := txGetPurchase(tx, ref)
		if err != nil {
			return err
		}
		if p.Status != StatusPending {
			return fmt.Errorf("purchase %s already %s: %w", purchaseID, p.Status, cerrors.ErrConflict)
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(StatusFailed)},
			{Path: "failedAt", Value: time.Now().UTC()},
			{Path: "failureReason", Value: reason},
		})
	})

	return cerrors.Classify(err)
}

func (r *firebaseRepository) ListCompleted(ctx context.Context) ([]*Purchase, error) {
	iter := r.firestoreClient.Collection(FirestorePurchasesCollection).
		Where("status", "==", string(StatusCompleted)).Documents(ctx)

	var purchases []*Purchase
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, cerrors.Classify(err)
		}

		p, err := decodePurchase(doc)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}

	return purchases, nil
}

func (r *firebaseRepository) AddEnrolledCourse(ctx context.Context, userID string, courseID string) error {
	_, err := r.firestoreClient.Collection(user.FirestoreUsersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "enrolledCourses", Value: firestore.ArrayUnion(courseID)},
	})

	return cerrors.Classify(err)
}

func (r *firebaseRepository) HasEnrolledCourse(ctx context.Context, userID string, courseID string) (bool, error) {
	doc, err := r.firestoreClient.Collection(user.FirestoreUsersCollection).Doc(userID).Get(ctx)
	if err != nil {
		return false, cerrors.Classify(err)
	}

	return docArrayContains(doc, "enrolledCourses", courseID), nil
}

func (r *firebaseRepository) AddEnrolledStudent(ctx context.Context, courseID string, userID string) error {
	_, err := r.firestoreClient.Collection(course.FirestoreCoursesCollection).Doc(courseID).Update(ctx, []firestore.Update{
		{Path: "enrolledStudents", Value: firestore.ArrayUnion(userID)},
	})

	return cerrors.Classify(err)
}

func (r *firebaseRepository) HasEnrolledStudent(ctx context.Context, courseID string, userID string) (bool, error) {
	doc, err := r.firestoreClient.Collection(course.FirestoreCoursesCollection).Doc(courseID).Get(ctx)
	if err != nil {
		return false, cerrors.Classify(err)
	}

	return docArrayContains(doc, "enrolledStudents", userID), nil
}

func txGetPurchase(tx *firestore.Transaction, ref *firestore.DocumentRef) (*Purchase, error) {
	doc, err := tx.Get(ref)
	if err != nil {
		return nil, cerrors.Classify(err)
	}

	return decodePurchase(doc)
}

func decodePurchase(doc *firestore.DocumentSnapshot) (*Purchase, error) {
	var p Purchase
	if err := mapstructure.Decode(doc.Data(), &p); err != nil {
		return nil, fmt.Errorf("error destructuring purchase document: %v", err)
	}

	p.ID = doc.Ref.ID

	return &p, nil
}

func docArrayContains(doc *firestore.DocumentSnapshot, field string, value string) bool {
	entries, ok := doc.Data()[field].([]interface{})
	if !ok {
		return false
	}
	for _, entry := range entries {
		if s, ok := entry.(string); ok && s == value {
			return true
		}
	}

	return false
}
