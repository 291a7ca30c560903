package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/cerrors"
	"learnhub/internal/course"
)

func TestRateReplacesPreviousValue(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	require.NoError(t, svc.Rate(context.Background(), "u1", "c1", 3))
	require.NoError(t, svc.Rate(context.Background(), "u1", "c1", 5))

	ratings, err := repo.Ratings(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, course.Rating{UserID: "u1", Value: 5}, ratings[0])
}

func TestAverageRating(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	require.NoError(t, svc.Rate(context.Background(), "u1", "c1", 3))
	require.NoError(t, svc.Rate(context.Background(), "u2", "c1", 4))

	avg, err := svc.AverageRating(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 3.5, avg)
}

func TestAverageRounding(t *testing.T) {
	ratings := []course.Rating{
		{UserID: "u1", Value: 5},
		{UserID: "u2", Value: 4},
		{UserID: "u3", Value: 4},
	}

	// 13/3 = 4.333..., rounded to one decimal place.
	assert.Equal(t, 4.3, Average(ratings))
}

func TestAverageUnratedCourse(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	avg, err := svc.AverageRating(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestRateRejectsOutOfRangeValues(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	for _, value := range []int{0, 6, -1} {
		err := svc.Rate(context.Background(), "u1", "c1", value)
		require.Error(t, err)
		assert.True(t, cerrors.IsValidation(err))
	}
}

func TestRateRequiresIDs(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	err := svc.Rate(context.Background(), "", "c1", 4)
	require.Error(t, err)
	assert.True(t, cerrors.IsValidation(err))
}

func TestReplaceAppendsNewRater(t *testing.T) {
	ratings := Replace(nil, "u1", 4)
	ratings = Replace(ratings, "u2", 5)
	ratings = Replace(ratings, "u1", 2)

	assert.Equal(t, []course.Rating{
		{UserID: "u1", Value: 2},
		{UserID: "u2", Value: 5},
	}, ratings)
}
