package cerrors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrValidation marks a malformed or missing required field. Never retried.
	ErrValidation = errors.New("validation error")

	// ErrSignature marks a bad or missing notification signature. Rejected
	// before any domain logic runs.
	ErrSignature = errors.New("invalid signature")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a terminal state that is already set, or a duplicate
	// delivery after completion. Absorbed as an idempotent no-op.
	ErrConflict = errors.New("conflict")

	// ErrTransient marks an I/O timeout or external lookup failure. Retried
	// once locally, then surfaced so the provider redelivers.
	ErrTransient = errors.New("transient error")
)

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsSignature(err error) bool  { return errors.Is(err, ErrSignature) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }

// Classify maps a Firestore RPC error onto the taxonomy. Errors that are
// already classified, and errors with no gRPC status, pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrTransient) || errors.Is(err, ErrValidation) {
		return err
	}

	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case codes.DeadlineExceeded, codes.Unavailable, codes.Aborted, codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	return err
}
