package purchase

import "time"

const FirestorePurchasesCollection = "purchases"

// Status is the lifecycle state of a purchase. The status is the single
// source of truth for enrollment; it is terminal once non-pending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Purchase is the durable record of a single checkout attempt and its
// terminal outcome. It is created pending at checkout initiation and
// transitioned exclusively by the reconciler.
type Purchase struct {
	ID            string     `json:"id" mapstructure:"id"`
	UserID        string     `json:"userId" mapstructure:"userId"`
	CourseID      string     `json:"courseId" mapstructure:"courseId"`
	Amount        float64    `json:"amount" mapstructure:"amount"`
	Status        Status     `json:"status" mapstructure:"status"`
	CreatedAt     time.Time  `json:"createdAt" mapstructure:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" mapstructure:"completedAt"`
	FailedAt      *time.Time `json:"failedAt,omitempty" mapstructure:"failedAt"`
	FailureReason string     `json:"failureReason,omitempty" mapstructure:"failureReason"`
}

// EventKind tags a verified payment notification. Payloads are parsed into
// this closed set at the webhook boundary so reconciliation is total over it.
type EventKind string

const (
	EventSucceeded EventKind = "succeeded"
	EventFailed    EventKind = "failed"
	EventUnknown   EventKind = "unknown"
)

// PaymentEvent is a verified payment provider notification. ExternalRef is
// the provider's payment-level handle; the domain purchase id is resolved
// through the provider lookup.
type PaymentEvent struct {
	Kind          EventKind
	ExternalRef   string
	FailureReason string
}

// InitiateRequest is the parameter struct for purchase initiation.
type InitiateRequest struct {
	CourseID string `json:"courseId"`
}
