package user

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"learnhub/internal/cerrors"
)

// Service applies identity provider notifications to the local user store and
// serves user reads.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// HandleCreated upserts a user record. If a record with the same id already
// exists the notification is absorbed without modification; the provider may
// deliver the same event more than once.
func (s *Service) HandleCreated(ctx context.Context, u *User) error {
	if u.ID == "" {
		return fmt.Errorf("identity created event missing subject id: %w", cerrors.ErrValidation)
	}

	err := s.repo.Create(ctx, u)
	if cerrors.IsConflict(err) {
		glog.Infof("user %s already exists, absorbing duplicate created event\n", u.ID)
		return nil
	}

	return err
}

// HandleUpdated merges the present fields of a partial update into the user
// record. Absent fields are left untouched.
func (s *Service) HandleUpdated(ctx context.Context, userID string, upd *Update) error {
	if userID == "" {
		return fmt.Errorf("identity updated event missing subject id: %w", cerrors.ErrValidation)
	}

	return s.repo.Update(ctx, userID, upd)
}

// HandleDeleted removes the user record. Purchases and ratings are not
// cascaded; they are kept for audit.
func (s *Service) HandleDeleted(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("identity deleted event missing subject id: %w", cerrors.ErrValidation)
	}

	return s.repo.Delete(ctx, userID)
}

// GetUserByID retrieves the User associated with the given ID.
func (s *Service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.Get(ctx, userID)
}

// HasAccess reports whether the user is enrolled in the course. Implements
// the entitlement check used by course read paths.
func (s *Service) HasAccess(ctx context.Context, userID string, courseID string) (bool, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true, nil
		}
	}

	return false, nil
}
