package educator

import (
	"context"
	"time"

	"github.com/golang/glog"

	"learnhub/internal/course"
	"learnhub/internal/purchase"
	"learnhub/internal/user"
)

// StudentSummary is the client-safe slice of a user shown to educators.
type StudentSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Enrollment pairs a student with the course they bought.
type Enrollment struct {
	Student      StudentSummary `json:"student"`
	CourseTitle  string         `json:"courseTitle"`
	PurchaseDate time.Time      `json:"purchaseDate"`
}

// Dashboard aggregates an educator's earnings and enrollments.
type Dashboard struct {
	TotalEarnings float64      `json:"totalEarnings"`
	TotalCourses  int          `json:"totalCourses"`
	Enrollments   []Enrollment `json:"enrollments"`
}

// Service derives educator reporting from courses and completed purchases.
// Earnings are computed from purchase records, never from the enrollment
// arrays, which are a repairable cache.
type Service struct {
	courses   course.Repository
	purchases purchase.Repository
	users     user.Repository
}

func NewService(courses course.Repository, purchases purchase.Repository, users user.Repository) *Service {
	return &Service{courses: courses, purchases: purchases, users: users}
}

// GetDashboard returns the educator's earnings, course count and roster.
func (s *Service) GetDashboard(ctx context.Context, educatorID string) (*Dashboard, error) {
	courses, err := s.courses.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}

	enrollments, earnings, err := s.completedEnrollments(ctx, courses)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalEarnings: earnings,
		TotalCourses:  len(courses),
		Enrollments:   enrollments,
	}, nil
}

// ListEnrollments returns the per-purchase enrollment listing for the
// educator's courses.
func (s *Service) ListEnrollments(ctx context.Context, educatorID string) ([]Enrollment, error) {
	courses, err := s.courses.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}

	enrollments, _, err := s.completedEnrollments(ctx, courses)

	return enrollments, err
}

func (s *Service) completedEnrollments(ctx context.Context, courses []*course.Course) ([]Enrollment, float64, error) {
	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}

	completed, err := s.purchases.ListCompleted(ctx)
	if err != nil {
		return nil, 0, err
	}

	enrollments := []Enrollment{}
	earnings := 0.0
	for _, p := range completed {
		title, ok := titles[p.CourseID]
		if !ok {
			continue
		}

		earnings += p.Amount

		student := StudentSummary{ID: p.UserID}
		if u, err := s.users.Get(ctx, p.UserID); err == nil {
			student.Name = u.Name
			student.ImageURL = u.ImageURL
		} else {
			// Identity deletions do not cascade to purchases, so the record
			// may outlive its user.
			glog.Warningf("enrollment listing: user %s not found for purchase %s\n", p.UserID, p.ID)
		}

		purchaseDate := p.CreatedAt
		if p.CompletedAt != nil {
			purchaseDate = *p.CompletedAt
		}

		enrollments = append(enrollments, Enrollment{
			Student:      student,
			CourseTitle:  title,
			PurchaseDate: purchaseDate,
		})
	}

	return enrollments, earnings, nil
}
