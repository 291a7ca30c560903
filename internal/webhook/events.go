package webhook

import (
	"encoding/json"
	"fmt"

	"learnhub/internal/cerrors"
	"learnhub/internal/purchase"
	"learnhub/internal/user"
)

// IdentityKind tags a verified identity notification.
type IdentityKind string

const (
	IdentityCreated IdentityKind = "created"
	IdentityDeleted IdentityKind = "deleted"
	IdentityUpdated IdentityKind = "updated"
	IdentityUnknown IdentityKind = "unknown"
)

// IdentityEvent is a parsed identity provider notification.
type IdentityEvent struct {
	Kind   IdentityKind
	UserID string
	User   *user.User   // populated for created
	Update *user.Update // populated for updated
}

type envelope struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// ParsePaymentEvent turns a raw payment notification body into the tagged
// event the reconciler consumes. Unrecognized types parse as EventUnknown so
// the endpoint can acknowledge and ignore them.
func ParsePaymentEvent(body []byte) (*purchase.PaymentEvent, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed payment notification: %w", cerrors.ErrValidation)
	}

	var kind purchase.EventKind
	switch env.Type {
	case "payment.succeeded":
		kind = purchase.EventSucceeded
	case "payment.failed":
		kind = purchase.EventFailed
	default:
		return &purchase.PaymentEvent{Kind: purchase.EventUnknown}, nil
	}

	ref := stringField(env.Data, "reference")
	if ref == "" {
		return nil, fmt.Errorf("payment notification missing reference: %w", cerrors.ErrValidation)
	}

	return &purchase.PaymentEvent{
		Kind:          kind,
		ExternalRef:   ref,
		FailureReason: stringField(env.Data, "failureReason"),
	}, nil
}

// ParseIdentityEvent turns a raw identity notification body into a tagged
// event. Update payloads are partial: only the fields present in data are
// carried over.
func ParseIdentityEvent(body []byte) (*IdentityEvent, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed identity notification: %w", cerrors.ErrValidation)
	}

	userID := stringField(env.Data, "id")

	switch env.Type {
	case "user.created":
		return &IdentityEvent{
			Kind:   IdentityCreated,
			UserID: userID,
			User: &user.User{
				ID:       userID,
				Email:    stringField(env.Data, "email"),
				Name:     stringField(env.Data, "name"),
				ImageURL: stringField(env.Data, "imageUrl"),
			},
		}, nil
	case "user.updated":
		return &IdentityEvent{
			Kind:   IdentityUpdated,
			UserID: userID,
			Update: &user.Update{
				Email:    optionalStringField(env.Data, "email"),
				Name:     optionalStringField(env.Data, "name"),
				ImageURL: optionalStringField(env.Data, "imageUrl"),
			},
		}, nil
	case "user.deleted":
		return &IdentityEvent{Kind: IdentityDeleted, UserID: userID}, nil
	default:
		return &IdentityEvent{Kind: IdentityUnknown}, nil
	}
}

func stringField(data map[string]interface{}, key string) string {
	if value, ok := data[key].(string); ok {
		return value
	}

	return ""
}

func optionalStringField(data map[string]interface{}, key string) *string {
	value, ok := data[key].(string)
	if !ok {
		return nil
	}

	return &value
}
