package course

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"

	"learnhub/internal/cerrors"
)

// Repository encapsulates the logic to access courses from a database.
// Course create/edit endpoints themselves live outside this core; Create
// exists so educator tooling and tests can seed the store.
type Repository interface {
	// Get returns the course corresponding to the specified course ID.
	Get(ctx context.Context, courseID string) (*Course, error)
	// ListPublished returns all published courses.
	ListPublished(ctx context.Context) ([]*Course, error)
	// ListByEducator returns all courses owned by the given educator.
	ListByEducator(ctx context.Context, educatorID string) ([]*Course, error)
	// Create saves a new course into the database.
	Create(ctx context.Context, c *Course) error
}

type firebaseRepository struct {
	firestoreClient *firestore.Client
}

// NewFirebaseRepository creates a new course repository with Firestore as the
// database.
func NewFirebaseRepository(client *firestore.Client) Repository {
	return &firebaseRepository{firestoreClient: client}
}

func (r *firebaseRepository) Get(ctx context.Context, courseID string) (*Course, error) {
	doc, err := r.firestoreClient.Collection(FirestoreCoursesCollection).Doc(courseID).Get(ctx)
	if err != nil {
		return nil, cerrors.Classify(err)
	}

	return decodeCourse(doc)
}

func (r *firebaseRepository) ListPublished(ctx context.Context) ([]*Course, error) {
	iter := r.firestoreClient.Collection(FirestoreCoursesCollection).
		Where("isPublished", "==", true).Documents(ctx)

	return collectCourses(iter)
}

func (r *firebaseRepository) ListByEducator(ctx context.Context, educatorID string) ([]*Course, error) {
	iter := r.firestoreClient.Collection(FirestoreCoursesCollection).
		Where("educatorId", "==", educatorID).Documents(ctx)

	return collectCourses(iter)
}

func (r *firebaseRepository) Create(ctx context.Context, c *Course) error {
	c.Normalize()
	_, err := r.firestoreClient.Collection(FirestoreCoursesCollection).Doc(c.ID).Set(ctx, map[string]interface{}{
		"id":               c.ID,
		"educatorId":       c.EducatorID,
		"title":            c.Title,
		"price":            c.Price,
		"discountPercent":  c.DiscountPercent,
		"isPublished":      c.IsPublished,
		"content":          contentDoc(c.Content),
		"enrolledStudents": c.EnrolledStudents,
		"ratings":          ratingsDoc(c.Ratings),
	})
	if err != nil {
		return cerrors.Classify(err)
	}

	return nil
}

func collectCourses(iter *firestore.DocumentIterator) ([]*Course, error) {
	var courses []*Course
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, cerrors.Classify(err)
		}

		c, err := decodeCourse(doc)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, nil
}

func decodeCourse(doc *firestore.DocumentSnapshot) (*Course, error) {
	var c Course
	if err := mapstructure.Decode(doc.Data(), &c); err != nil {
		return nil, fmt.Errorf("error destructuring course document: %v", err)
	}

	c.ID = doc.Ref.ID
	c.Normalize()

	return &c, nil
}

func contentDoc(content []Chapter) []map[string]interface{} {
	chapters := make([]map[string]interface{}, len(content))
	for i, ch := range content {
		lectures := make([]map[string]interface{}, len(ch.Lectures))
		for j, lecture := range ch.Lectures {
			lectures[j] = map[string]interface{}{
				"id":              lecture.ID,
				"order":           lecture.Order,
				"title":           lecture.Title,
				"url":             lecture.URL,
				"durationMinutes": lecture.DurationMinutes,
				"isPreviewFree":   lecture.IsPreviewFree,
			}
		}
		chapters[i] = map[string]interface{}{
			"id":       ch.ID,
			"order":    ch.Order,
			"title":    ch.Title,
			"lectures": lectures,
		}
	}

	return chapters
}

func ratingsDoc(ratings []Rating) []map[string]interface{} {
	entries := make([]map[string]interface{}, len(ratings))
	for i, rating := range ratings {
		entries[i] = map[string]interface{}{
			"userId": rating.UserID,
			"value":  rating.Value,
		}
	}

	return entries
}
