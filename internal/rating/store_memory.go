package rating

import (
	"context"
	"sync"

	"learnhub/internal/course"
)

// memoryRepository is an in-memory Repository used in tests and local
// development.
type memoryRepository struct {
	mu      sync.RWMutex
	ratings map[string][]course.Rating
}

func NewMemoryRepository() Repository {
	return &memoryRepository{ratings: make(map[string][]course.Rating)}
}

func (r *memoryRepository) Ratings(ctx context.Context, courseID string) ([]course.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]course.Rating{}, r.ratings[courseID]...), nil
}

func (r *memoryRepository) SetRating(ctx context.Context, courseID string, userID string, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ratings[courseID] = Replace(r.ratings[courseID], userID, value)

	return nil
}
