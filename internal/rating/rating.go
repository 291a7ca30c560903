package rating

import (
	"context"
	"fmt"
	"math"

	"learnhub/internal/cerrors"
	"learnhub/internal/course"
)

// Service stores per-user course ratings and computes their mean.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Rate stores the user's rating for the course. Values outside 1..5 are
// rejected; re-rating replaces the previous value rather than appending.
func (s *Service) Rate(ctx context.Context, userID string, courseID string, value int) error {
	if userID == "" || courseID == "" {
		return fmt.Errorf("rating requires user and course ids: %w", cerrors.ErrValidation)
	}
	if value < 1 || value > 5 {
		return fmt.Errorf("rating value %d outside 1..5: %w", value, cerrors.ErrValidation)
	}

	return s.repo.SetRating(ctx, courseID, userID, value)
}

// AverageRating returns the course's mean rating rounded to one decimal
// place, recomputed from the live entry set. An unrated course reports 0.
func (s *Service) AverageRating(ctx context.Context, courseID string) (float64, error) {
	ratings, err := s.repo.Ratings(ctx, courseID)
	if err != nil {
		return 0, err
	}

	return Average(ratings), nil
}

// Average computes the one-decimal mean of the given entries.
func Average(ratings []course.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating.Value
	}
	mean := float64(sum) / float64(len(ratings))

	return math.Round(mean*10) / 10
}

// Replace substitutes the user's entry in place, appending when the user has
// not rated before.
func Replace(ratings []course.Rating, userID string, value int) []course.Rating {
	for i, rating := range ratings {
		if rating.UserID == userID {
			ratings[i].Value = value
			return ratings
		}
	}

	return append(ratings, course.Rating{UserID: userID, Value: value})
}
