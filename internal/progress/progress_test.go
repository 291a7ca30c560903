package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/cerrors"
	"learnhub/internal/course"
)

func tenLectureCourse() *course.Course {
	chapters := []course.Chapter{
		{ID: "ch1", Lectures: []course.Lecture{
			{ID: "l1"}, {ID: "l2"}, {ID: "l3"}, {ID: "l4"}, {ID: "l5"},
		}},
		{ID: "ch2", Lectures: []course.Lecture{
			{ID: "l6"}, {ID: "l7"}, {ID: "l8"}, {ID: "l9"}, {ID: "l10"},
		}},
	}

	return &course.Course{ID: "c1", Title: "Intro to Go", IsPublished: true, Content: chapters}
}

func newTestService(t *testing.T, courses ...*course.Course) *Service {
	t.Helper()

	catalogRepo := course.NewMemoryRepository()
	for _, c := range courses {
		require.NoError(t, catalogRepo.Create(context.Background(), c))
	}

	return NewService(NewMemoryRepository(), course.NewService(catalogRepo))
}

func TestPercentComplete(t *testing.T) {
	svc := newTestService(t, tenLectureCourse())

	for _, id := range []string{"l1", "l2", "l3", "l4"} {
		require.NoError(t, svc.MarkComplete(context.Background(), "u1", "c1", id))
	}

	percent, err := svc.PercentComplete(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, percent)
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	svc := newTestService(t, tenLectureCourse())

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.MarkComplete(context.Background(), "u1", "c1", "l1"))
	}

	completed, err := svc.CompletedLectures(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, completed)

	percent, err := svc.PercentComplete(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, percent)
}

func TestMarkCompleteRejectsUnknownLecture(t *testing.T) {
	svc := newTestService(t, tenLectureCourse())

	err := svc.MarkComplete(context.Background(), "u1", "c1", "l99")
	require.Error(t, err)
	assert.True(t, cerrors.IsValidation(err))
}

func TestMarkCompleteRequiresIDs(t *testing.T) {
	svc := newTestService(t, tenLectureCourse())

	err := svc.MarkComplete(context.Background(), "", "c1", "l1")
	require.Error(t, err)
	assert.True(t, cerrors.IsValidation(err))

	err = svc.MarkComplete(context.Background(), "u1", "c1", "")
	require.Error(t, err)
	assert.True(t, cerrors.IsValidation(err))
}

func TestPercentCompleteEmptyCourse(t *testing.T) {
	svc := newTestService(t, &course.Course{ID: "c2", Title: "Placeholder"})

	percent, err := svc.PercentComplete(context.Background(), "u1", "c2")
	require.NoError(t, err)
	assert.Equal(t, 0.0, percent)
}

func TestPercentCompleteNoProgress(t *testing.T) {
	svc := newTestService(t, tenLectureCourse())

	percent, err := svc.PercentComplete(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, percent)
}
