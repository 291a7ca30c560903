package course

import (
	"context"
	"fmt"
	"sync"

	"learnhub/internal/cerrors"
)

// memoryRepository is an in-memory Repository used in tests and local
// development.
type memoryRepository struct {
	mu      sync.RWMutex
	courses map[string]*Course
}

func NewMemoryRepository() Repository {
	return &memoryRepository{courses: make(map[string]*Course)}
}

func (r *memoryRepository) Get(ctx context.Context, courseID string) (*Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("course %s: %w", courseID, cerrors.ErrNotFound)
	}

	return copyCourse(c), nil
}

func (r *memoryRepository) ListPublished(ctx context.Context) ([]*Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var courses []*Course
	for _, c := range r.courses {
		if c.IsPublished {
			courses = append(courses, copyCourse(c))
		}
	}

	return courses, nil
}

func (r *memoryRepository) ListByEducator(ctx context.Context, educatorID string) ([]*Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var courses []*Course
	for _, c := range r.courses {
		if c.EducatorID == educatorID {
			courses = append(courses, copyCourse(c))
		}
	}

	return courses, nil
}

func (r *memoryRepository) Create(ctx context.Context, c *Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyCourse(c)
	stored.Normalize()
	r.courses[c.ID] = stored

	return nil
}

func copyCourse(c *Course) *Course {
	copied := *c
	copied.Content = VisibleContent(c.Content, true)
	copied.EnrolledStudents = append([]string{}, c.EnrolledStudents...)
	copied.Ratings = append([]Rating{}, c.Ratings...)

	return &copied
}
