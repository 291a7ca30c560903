package purchase

import (
	"context"
	"fmt"

	"github.com/avast/retry-go"
	"github.com/golang/glog"

	"learnhub/internal/cerrors"
)

// Reconciler translates verified payment notifications into durable purchase
// and enrollment state. Deliveries may be duplicated and unordered; every
// path through the reconciler is idempotent, and the purchase status CAS
// guarantees exactly one effective terminal transition per purchase.
type Reconciler struct {
	repo     Repository
	provider Provider
}

func NewReconciler(repo Repository, provider Provider) *Reconciler {
	return &Reconciler{repo: repo, provider: provider}
}

// HandlePaymentEvent applies a verified payment event. A nil return means the
// event is fully absorbed and the provider should not redeliver; a transient
// error means the provider should redeliver.
func (rc *Reconciler) HandlePaymentEvent(ctx context.Context, event *PaymentEvent) error {
	switch event.Kind {
	case EventSucceeded:
		return rc.applySucceeded(ctx, event)
	case EventFailed:
		return rc.applyFailed(ctx, event)
	default:
		glog.Infof("ignoring unrecognized payment event for ref %s\n", event.ExternalRef)
		return nil
	}
}

func (rc *Reconciler) applySucceeded(ctx context.Context, event *PaymentEvent) error {
	p, done, err := rc.loadForTransition(ctx, event.ExternalRef, StatusCompleted)
	if err != nil || done {
		return err
	}

	err = retryTransient(func() error {
		return rc.repo.Complete(ctx, p.ID)
	})
	switch {
	case cerrors.IsConflict(err):
		// A concurrent duplicate delivery won the CAS race.
		glog.Infof("purchase %s transitioned concurrently, absorbing duplicate\n", p.ID)
		return nil
	case cerrors.IsNotFound(err):
		glog.Warningf("purchase %s disappeared before completion, acknowledging\n", p.ID)
		return nil
	case err != nil:
		return fmt.Errorf("completing purchase %s: %w", p.ID, err)
	}

	glog.Infof("purchase %s completed\n", p.ID)

	// Enrollment edges are applied only after the CAS succeeds: the completed
	// purchase is the durable fact the repair sweep re-derives them from if
	// the process dies before the writes land.
	return rc.applyEnrollment(ctx, p)
}

func (rc *Reconciler) applyFailed(ctx context.Context, event *PaymentEvent) error {
	p, done, err := rc.loadForTransition(ctx, event.ExternalRef, StatusFailed)
	if err != nil || done {
		return err
	}

	err = retryTransient(func() error {
		return rc.repo.Fail(ctx, p.ID, event.FailureReason)
	})
	switch {
	case cerrors.IsConflict(err):
		glog.Infof("purchase %s transitioned concurrently, absorbing duplicate\n", p.ID)
		return nil
	case cerrors.IsNotFound(err):
		glog.Warningf("purchase %s disappeared before failure, acknowledging\n", p.ID)
		return nil
	case err != nil:
		return fmt.Errorf("failing purchase %s: %w", p.ID, err)
	}

	glog.Infof("purchase %s failed: %s\n", p.ID, event.FailureReason)

	return nil
}

// loadForTransition resolves the external reference and loads the purchase.
// done reports that the event is already absorbed: the purchase is missing
// (redelivery cannot fix that) or a terminal status is already set (first
// terminal state wins).
func (rc *Reconciler) loadForTransition(ctx context.Context, externalRef string, target Status) (p *Purchase, done bool, err error) {
	var purchaseID string
	err = retryTransient(func() error {
		var lookupErr error
		purchaseID, lookupErr = rc.provider.PurchaseIDForRef(ctx, externalRef)
		return lookupErr
	})
	if cerrors.IsNotFound(err) || cerrors.IsValidation(err) {
		glog.Warningf("payment ref %s does not resolve to a purchase: %v\n", externalRef, err)
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("resolving payment ref %s: %w", externalRef, err)
	}

	err = retryTransient(func() error {
		var getErr error
		p, getErr = rc.repo.Get(ctx, purchaseID)
		return getErr
	})
	if cerrors.IsNotFound(err) {
		glog.Warningf("purchase %s not found for payment ref %s, acknowledging\n", purchaseID, externalRef)
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading purchase %s: %w", purchaseID, err)
	}

	switch p.Status {
	case StatusPending:
		return p, false, nil
	case target:
		glog.Infof("purchase %s already %s, absorbing duplicate delivery\n", p.ID, p.Status)
		return p, true, nil
	default:
		glog.Warningf("purchase %s already %s, conflicting %s event not applied\n", p.ID, p.Status, target)
		return p, true, nil
	}
}

// applyEnrollment writes both enrollment edges for a completed purchase,
// each guarded by a membership check so replays append nothing.
func (rc *Reconciler) applyEnrollment(ctx context.Context, p *Purchase) error {
	enrolled, err := rc.hasStudentEdge(ctx, p)
	if err != nil {
		return err
	}
	if !enrolled {
		err = retryTransient(func() error {
			return rc.repo.AddEnrolledStudent(ctx, p.CourseID, p.UserID)
		})
		if err != nil {
			return fmt.Errorf("enrolling student for purchase %s: %w", p.ID, err)
		}
		glog.Infof("purchase %s: added user %s to course %s enrolled students\n", p.ID, p.UserID, p.CourseID)
	}

	enrolled, err = rc.hasCourseEdge(ctx, p)
	if err != nil {
		return err
	}
	if !enrolled {
		err = retryTransient(func() error {
			return rc.repo.AddEnrolledCourse(ctx, p.UserID, p.CourseID)
		})
		if err != nil {
			return fmt.Errorf("enrolling course for purchase %s: %w", p.ID, err)
		}
		glog.Infof("purchase %s: added course %s to user %s enrollments\n", p.ID, p.CourseID, p.UserID)
	}

	return nil
}

// RepairSweep re-derives enrollment edges from completed purchases, healing
// any partial failure between the status CAS and the edge writes. It only
// adds missing edges, so it is idempotent and safe to run concurrently with
// live traffic.
func (rc *Reconciler) RepairSweep(ctx context.Context) (int, error) {
	var purchases []*Purchase
	err := retryTransient(func() error {
		var listErr error
		purchases, listErr = rc.repo.ListCompleted(ctx)
		return listErr
	})
	if err != nil {
		return 0, fmt.Errorf("listing completed purchases: %w", err)
	}

	repaired := 0
	for _, p := range purchases {
		missing, err := rc.missingEdges(ctx, p)
		if err != nil {
			glog.Warningf("repair sweep: skipping purchase %s: %v\n", p.ID, err)
			continue
		}
		if !missing {
			continue
		}

		if err := rc.applyEnrollment(ctx, p); err != nil {
			glog.Warningf("repair sweep: purchase %s not repaired: %v\n", p.ID, err)
			continue
		}

		glog.Infof("repair sweep: restored enrollment edges for purchase %s\n", p.ID)
		repaired++
	}

	return repaired, nil
}

func (rc *Reconciler) missingEdges(ctx context.Context, p *Purchase) (bool, error) {
	hasStudent, err := rc.hasStudentEdge(ctx, p)
	if err != nil {
		return false, err
	}
	hasCourse, err := rc.hasCourseEdge(ctx, p)
	if err != nil {
		return false, err
	}

	return !hasStudent || !hasCourse, nil
}

func (rc *Reconciler) hasStudentEdge(ctx context.Context, p *Purchase) (bool, error) {
	var enrolled bool
	err := retryTransient(func() error {
		var checkErr error
		enrolled, checkErr = rc.repo.HasEnrolledStudent(ctx, p.CourseID, p.UserID)
		return checkErr
	})
	if err != nil {
		return false, fmt.Errorf("checking course %s enrollment for purchase %s: %w", p.CourseID, p.ID, err)
	}

	return enrolled, nil
}

func (rc *Reconciler) hasCourseEdge(ctx context.Context, p *Purchase) (bool, error) {
	var enrolled bool
	err := retryTransient(func() error {
		var checkErr error
		enrolled, checkErr = rc.repo.HasEnrolledCourse(ctx, p.UserID, p.CourseID)
		return checkErr
	})
	if err != nil {
		return false, fmt.Errorf("checking user %s enrollment for purchase %s: %w", p.UserID, p.ID, err)
	}

	return enrolled, nil
}

// retryTransient retries an operation once when it fails transiently, the
// local half of the at-least-once delivery contract. Anything still failing
// after that is surfaced so the provider redelivers.
func retryTransient(op func() error) error {
	return retry.Do(op,
		retry.Attempts(2),
		retry.LastErrorOnly(true),
		retry.RetryIf(cerrors.IsTransient),
	)
}
