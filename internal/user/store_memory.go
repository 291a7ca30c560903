package user

import (
	"context"
	"fmt"
	"sync"

	"learnhub/internal/cerrors"
)

// memoryRepository is an in-memory Repository used in tests and local
// development.
type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]*User)}
}

func (r *memoryRepository) Get(ctx context.Context, userID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, cerrors.ErrNotFound)
	}

	copied := *u
	copied.EnrolledCourses = append([]string{}, u.EnrolledCourses...)

	return &copied, nil
}

func (r *memoryRepository) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; ok {
		return fmt.Errorf("user %s already exists: %w", u.ID, cerrors.ErrConflict)
	}

	copied := *u
	copied.EnrolledCourses = []string{}
	r.users[u.ID] = &copied

	return nil
}

func (r *memoryRepository) Update(ctx context.Context, userID string, upd *Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, cerrors.ErrNotFound)
	}

	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.ImageURL != nil {
		u.ImageURL = *upd.ImageURL
	}

	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, userID)

	return nil
}
