package purchase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"learnhub/internal/cerrors"
)

// memoryRepository is an in-memory Repository used in tests and local
// development. The status guard matches the Firestore transaction semantics:
// of N concurrent completion attempts, exactly one observes pending.
type memoryRepository struct {
	mu               sync.Mutex
	purchases        map[string]*Purchase
	enrolledCourses  map[string][]string // userID → courseIDs
	enrolledStudents map[string][]string // courseID → userIDs
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		purchases:        make(map[string]*Purchase),
		enrolledCourses:  make(map[string][]string),
		enrolledStudents: make(map[string][]string),
	}
}

func (r *memoryRepository) Create(ctx context.Context, p *Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.purchases[p.ID]; ok {
		return fmt.Errorf("purchase %s already exists: %w", p.ID, cerrors.ErrConflict)
	}

	copied := *p
	r.purchases[p.ID] = &copied

	return nil
}

func (r *memoryRepository) Get(ctx context.Context, purchaseID string) (*Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("purchase %s: %w", purchaseID, cerrors.ErrNotFound)
	}

	copied := *p

	return &copied, nil
}

func (r *memoryRepository) Complete(ctx context.Context, purchaseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.purchases[purchaseID]
	if !ok {
		return fmt.Errorf("purchase %s: %w", purchaseID, cerrors.ErrNotFound)
	}
	if p.Status != StatusPending {
		return fmt.Errorf("purchase %s already %s: %w", purchaseID, p.Status, cerrors.ErrConflict)
	}

	now := time.Now().UTC()
	p.Status = StatusCompleted
	p.CompletedAt = &now

	return nil
}

func (r *memoryRepository) Fail(ctx context.Context, purchaseID string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.purchases[purchaseID]
	if !ok {
		return fmt.Errorf("purchase %s: %w", purchaseID, cerrors.ErrNotFound)
	}
	if p.Status != StatusPending {
		return fmt.Errorf("purchase %s already %s: %w", purchaseID, p.Status, cerrors.ErrConflict)
	}

	now := time.Now().UTC()
	p.Status = StatusFailed
	p.FailedAt = &now
	p.FailureReason = reason

	return nil
}

func (r *memoryRepository) ListCompleted(ctx context.Context) ([]*Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purchases []*Purchase
	for _, p := range r.purchases {
		if p.Status == StatusCompleted {
			copied := *p
			purchases = append(purchases, &copied)
		}
	}

	return purchases, nil
}

func (r *memoryRepository) AddEnrolledCourse(ctx context.Context, userID string, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enrolledCourses[userID] = appendIfAbsent(r.enrolledCourses[userID], courseID)

	return nil
}

func (r *memoryRepository) HasEnrolledCourse(ctx context.Context, userID string, courseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return contains(r.enrolledCourses[userID], courseID), nil
}

func (r *memoryRepository) AddEnrolledStudent(ctx context.Context, courseID string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enrolledStudents[courseID] = appendIfAbsent(r.enrolledStudents[courseID], userID)

	return nil
}

func (r *memoryRepository) HasEnrolledStudent(ctx context.Context, courseID string, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return contains(r.enrolledStudents[courseID], userID), nil
}

func appendIfAbsent(entries []string, value string) []string {
	if contains(entries, value) {
		return entries
	}

	return append(entries, value)
}

func contains(entries []string, value string) bool {
	for _, entry := range entries {
		if entry == value {
			return true
		}
	}

	return false
}
