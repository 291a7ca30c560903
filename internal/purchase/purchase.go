package purchase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"learnhub/internal/cerrors"
	"learnhub/internal/course"
)

// Catalog is the course lookup used when pricing a checkout.
type Catalog interface {
	GetCourseByID(ctx context.Context, courseID string) (*course.Course, error)
}

// Service initiates purchases. It creates the pending record and hands the
// caller a provider checkout handle; terminal transitions belong exclusively
// to the Reconciler.
type Service struct {
	repo     Repository
	provider Provider
	catalog  Catalog
}

func NewService(repo Repository, provider Provider, catalog Catalog) *Service {
	return &Service{repo: repo, provider: provider, catalog: catalog}
}

// Initiate creates a pending purchase for the caller and returns it together
// with the provider checkout handle.
func (s *Service) Initiate(ctx context.Context, userID string, courseID string) (*Purchase, string, error) {
	if courseID == "" {
		return nil, "", fmt.Errorf("purchase requires a course id: %w", cerrors.ErrValidation)
	}

	c, err := s.catalog.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	p := &Purchase{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourseID:  c.ID,
		Amount:    discountedAmount(c.Price, c.DiscountPercent),
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, "", fmt.Errorf("creating purchase: %w", err)
	}

	checkoutURL, err := s.provider.CreateCheckout(ctx, p)
	if err != nil {
		// The pending record stays; the provider will eventually deliver a
		// failed event or the purchase remains an abandoned checkout.
		glog.Warningf("purchase %s: checkout creation failed: %v\n", p.ID, err)
		return nil, "", fmt.Errorf("creating checkout for purchase %s: %w", p.ID, err)
	}

	glog.Infof("purchase %s created pending for user %s on course %s\n", p.ID, userID, courseID)

	return p, checkoutURL, nil
}

func discountedAmount(price float64, discountPercent int) float64 {
	amount := price - price*float64(discountPercent)/100

	return math.Round(amount*100) / 100
}
