package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCourse() *Course {
	return &Course{
		ID:          "c1",
		EducatorID:  "e1",
		Title:       "Intro to Go",
		Price:       100,
		IsPublished: true,
		Content: []Chapter{
			{
				ID:    "ch1",
				Order: 1,
				Title: "Getting Started",
				Lectures: []Lecture{
					{ID: "l1", Order: 1, Title: "Welcome", URL: "https://cdn.example.com/l1", DurationMinutes: 30, IsPreviewFree: true},
					{ID: "l2", Order: 2, Title: "Setup", URL: "https://cdn.example.com/l2", DurationMinutes: 45},
				},
			},
			{
				ID:    "ch2",
				Order: 2,
				Title: "Basics",
				Lectures: []Lecture{
					{ID: "l3", Order: 1, Title: "Types", URL: "https://cdn.example.com/l3", DurationMinutes: 20},
				},
			},
		},
	}
}

func TestCourseDuration(t *testing.T) {
	c := sampleCourse()
	assert.Equal(t, 95, CourseMinutes(c))
	assert.Equal(t, "1h 35m", CourseDuration(c))
	assert.Equal(t, "1h 15m", ChapterDuration(c.Content[0]))
	assert.Equal(t, "20m", ChapterDuration(c.Content[1]))
}

func TestDurationSkipsMalformedLectures(t *testing.T) {
	ch := Chapter{Lectures: []Lecture{
		{ID: "l1", DurationMinutes: 30},
		{ID: "l2", DurationMinutes: 0},
		{ID: "l3", DurationMinutes: -10},
	}}

	assert.Equal(t, 30, ChapterMinutes(ch))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatDuration(0))
	assert.Equal(t, "59m", FormatDuration(59))
	assert.Equal(t, "1h", FormatDuration(60))
	assert.Equal(t, "2h 5m", FormatDuration(125))
}

func TestLectureCountIncludesMalformed(t *testing.T) {
	c := sampleCourse()
	c.Content = append(c.Content, Chapter{ID: "ch3", Lectures: []Lecture{{ID: "l4"}}})

	assert.Equal(t, 4, LectureCount(c))
	assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, LectureIDs(c))
}

func TestVisibleContentGatesLectureURLs(t *testing.T) {
	c := sampleCourse()

	visible := VisibleContent(c.Content, false)
	assert.Equal(t, "https://cdn.example.com/l1", visible[0].Lectures[0].URL)
	assert.Empty(t, visible[0].Lectures[1].URL)
	assert.Empty(t, visible[1].Lectures[0].URL)

	// The original content tree is untouched.
	assert.Equal(t, "https://cdn.example.com/l2", c.Content[0].Lectures[1].URL)
}

func TestVisibleContentWithAccess(t *testing.T) {
	c := sampleCourse()

	visible := VisibleContent(c.Content, true)
	assert.Equal(t, "https://cdn.example.com/l2", visible[0].Lectures[1].URL)
	assert.Equal(t, "https://cdn.example.com/l3", visible[1].Lectures[0].URL)
}

func TestListPublishedStripsContent(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	c := sampleCourse()
	c.EnrolledStudents = []string{"u1"}
	require.NoError(t, repo.Create(context.Background(), c))

	draft := sampleCourse()
	draft.ID = "c2"
	draft.IsPublished = false
	require.NoError(t, repo.Create(context.Background(), draft))

	courses, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "c1", courses[0].ID)
	assert.Nil(t, courses[0].Content)
	assert.Nil(t, courses[0].EnrolledStudents)
}

func TestGetVisible(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	require.NoError(t, repo.Create(context.Background(), sampleCourse()))

	c, err := svc.GetVisible(context.Background(), "c1", false)
	require.NoError(t, err)
	assert.Empty(t, c.Content[0].Lectures[1].URL)

	c, err = svc.GetVisible(context.Background(), "c1", true)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/l2", c.Content[0].Lectures[1].URL)
}
