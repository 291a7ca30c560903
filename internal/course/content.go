package course

import "fmt"

// ChapterMinutes sums lecture durations within a chapter. Lectures without a
// positive duration are skipped rather than failing the aggregation.
func ChapterMinutes(ch Chapter) int {
	total := 0
	for _, lecture := range ch.Lectures {
		if lecture.DurationMinutes > 0 {
			total += lecture.DurationMinutes
		}
	}

	return total
}

// CourseMinutes sums lecture durations across all chapters.
func CourseMinutes(c *Course) int {
	total := 0
	for _, ch := range c.Content {
		total += ChapterMinutes(ch)
	}

	return total
}

// FormatDuration renders a minute count as hours and minutes, e.g. "1h 35m".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	minutes = minutes % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// ChapterDuration returns the formatted total duration of a chapter.
func ChapterDuration(ch Chapter) string {
	return FormatDuration(ChapterMinutes(ch))
}

// CourseDuration returns the formatted total duration of a course.
func CourseDuration(c *Course) string {
	return FormatDuration(CourseMinutes(c))
}

// LectureCount returns the number of lectures across all chapters.
func LectureCount(c *Course) int {
	count := 0
	for _, ch := range c.Content {
		count += len(ch.Lectures)
	}

	return count
}

// LectureIDs returns every lecture id in the course, in content order.
func LectureIDs(c *Course) []string {
	ids := make([]string, 0, LectureCount(c))
	for _, ch := range c.Content {
		for _, lecture := range ch.Lectures {
			ids = append(ids, lecture.ID)
		}
	}

	return ids
}

// VisibleLecture returns a copy of the lecture with the URL blanked unless the
// lecture is preview-free or the caller has access. Applied on every server
// read path that can reach an unentitled caller.
func VisibleLecture(lecture Lecture, hasAccess bool) Lecture {
	if !lecture.IsPreviewFree && !hasAccess {
		lecture.URL = ""
	}

	return lecture
}

// VisibleContent returns a deep copy of the content tree with lecture URLs
// gated per VisibleLecture.
func VisibleContent(content []Chapter, hasAccess bool) []Chapter {
	visible := make([]Chapter, len(content))
	for i, ch := range content {
		lectures := make([]Lecture, len(ch.Lectures))
		for j, lecture := range ch.Lectures {
			lectures[j] = VisibleLecture(lecture, hasAccess)
		}
		ch.Lectures = lectures
		visible[i] = ch
	}

	return visible
}
