package cerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", status.Error(codes.NotFound, "no document"), ErrNotFound},
		{"already exists", status.Error(codes.AlreadyExists, "document exists"), ErrConflict},
		{"unavailable", status.Error(codes.Unavailable, "backend down"), ErrTransient},
		{"deadline", status.Error(codes.DeadlineExceeded, "too slow"), ErrTransient},
		{"aborted", status.Error(codes.Aborted, "contention"), ErrTransient},
		{"exhausted", status.Error(codes.ResourceExhausted, "quota"), ErrTransient},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(Classify(tc.err), tc.want))
		})
	}
}

func TestClassifyPassthrough(t *testing.T) {
	err := fmt.Errorf("plain failure")
	assert.Equal(t, err, Classify(err))
	assert.Nil(t, Classify(nil))
}

func TestHelpersMatchWrappedSentinels(t *testing.T) {
	assert.True(t, IsTransient(fmt.Errorf("outer: %w", ErrTransient)))
	assert.True(t, IsValidation(fmt.Errorf("outer: %w", ErrValidation)))
	assert.True(t, IsSignature(fmt.Errorf("outer: %w", ErrSignature)))
	assert.True(t, IsNotFound(fmt.Errorf("outer: %w", ErrNotFound)))
	assert.True(t, IsConflict(fmt.Errorf("outer: %w", ErrConflict)))
	assert.False(t, IsTransient(nil))
	assert.False(t, IsNotFound(fmt.Errorf("unrelated")))
}
