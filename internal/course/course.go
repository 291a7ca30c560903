package course

import "context"

// Service exposes course read operations with lecture URL gating applied.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPublished returns all published courses with the content and enrollment
// arrays stripped, the shape used by the catalog listing.
func (s *Service) ListPublished(ctx context.Context) ([]*Course, error) {
	courses, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	stripped := make([]*Course, len(courses))
	for i, c := range courses {
		copied := *c
		copied.Content = nil
		copied.EnrolledStudents = nil
		stripped[i] = &copied
	}

	return stripped, nil
}

// GetVisible returns the course with lecture URLs blanked for lectures that
// are not preview-free, unless the caller is entitled.
func (s *Service) GetVisible(ctx context.Context, courseID string, hasAccess bool) (*Course, error) {
	c, err := s.repo.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	copied := *c
	copied.Content = VisibleContent(c.Content, hasAccess)

	return &copied, nil
}

// GetCourseByID returns the raw course record for internal callers.
func (s *Service) GetCourseByID(ctx context.Context, courseID string) (*Course, error) {
	return s.repo.Get(ctx, courseID)
}
