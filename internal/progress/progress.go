package progress

import (
	"context"
	"fmt"

	"learnhub/internal/cerrors"
	"learnhub/internal/course"
)

// Catalog is the course lookup used to resolve a course's lecture set.
type Catalog interface {
	GetCourseByID(ctx context.Context, courseID string) (*course.Course, error)
}

// Service tracks per-user per-course lecture completion.
type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// MarkComplete records that the user finished the lecture. Marking an
// already-complete lecture has no effect.
func (s *Service) MarkComplete(ctx context.Context, userID string, courseID string, lectureID string) error {
	if userID == "" || courseID == "" || lectureID == "" {
		return fmt.Errorf("mark-complete requires user, course and lecture ids: %w", cerrors.ErrValidation)
	}

	c, err := s.catalog.GetCourseByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !lectureInCourse(c, lectureID) {
		return fmt.Errorf("lecture %s is not part of course %s: %w", lectureID, courseID, cerrors.ErrValidation)
	}

	return s.repo.MarkComplete(ctx, userID, courseID, lectureID)
}

// PercentComplete returns the share of the course's lectures the user has
// completed, in percent. A course with no lectures reports 0.
func (s *Service) PercentComplete(ctx context.Context, userID string, courseID string) (float64, error) {
	c, err := s.catalog.GetCourseByID(ctx, courseID)
	if err != nil {
		return 0, err
	}

	lectureIDs := course.LectureIDs(c)
	if len(lectureIDs) == 0 {
		return 0, nil
	}

	completed, err := s.repo.CompletedLectures(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}

	completedSet := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		completedSet[id] = struct{}{}
	}

	// Count over the course's lecture ids so stale entries for removed
	// lectures never inflate the ratio.
	count := 0
	for _, id := range lectureIDs {
		if _, ok := completedSet[id]; ok {
			count++
		}
	}

	return float64(count) / float64(len(lectureIDs)) * 100, nil
}

// CompletedLectures returns the user's completed lecture ids for the course.
func (s *Service) CompletedLectures(ctx context.Context, userID string, courseID string) ([]string, error) {
	return s.repo.CompletedLectures(ctx, userID, courseID)
}

func lectureInCourse(c *course.Course, lectureID string) bool {
	for _, id := range course.LectureIDs(c) {
		if id == lectureID {
			return true
		}
	}

	return false
}
