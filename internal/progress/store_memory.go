package progress

import (
	"context"
	"sync"
)

// memoryRepository is an in-memory Repository used in tests and local
// development.
type memoryRepository struct {
	mu      sync.RWMutex
	records map[string][]string
}

func NewMemoryRepository() Repository {
	return &memoryRepository{records: make(map[string][]string)}
}

func (r *memoryRepository) MarkComplete(ctx context.Context, userID string, courseID string, lectureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := RecordID(userID, courseID)
	for _, id := range r.records[key] {
		if id == lectureID {
			return nil
		}
	}
	r.records[key] = append(r.records[key], lectureID)

	return nil
}

func (r *memoryRepository) CompletedLectures(ctx context.Context, userID string, courseID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string{}, r.records[RecordID(userID, courseID)]...), nil
}
