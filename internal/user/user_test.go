package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/cerrors"
)

func stringPtr(s string) *string { return &s }

func TestHandleCreatedAbsorbsDuplicates(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	u := &User{ID: "u1", Email: "ada@example.com", Name: "Ada"}

	require.NoError(t, svc.HandleCreated(context.Background(), u))
	require.NoError(t, svc.HandleCreated(context.Background(), u))

	got, err := svc.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}

func TestHandleCreatedRequiresID(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	err := svc.HandleCreated(context.Background(), &User{Email: "ada@example.com"})
	require.Error(t, err)
	assert.True(t, cerrors.IsValidation(err))
}

func TestHandleUpdatedMergesPresentFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	require.NoError(t, svc.HandleCreated(context.Background(), &User{
		ID:       "u1",
		Email:    "ada@example.com",
		Name:     "Ada",
		ImageURL: "https://img.example.com/ada.png",
	}))

	err := svc.HandleUpdated(context.Background(), "u1", &Update{Name: stringPtr("Ada Lovelace")})
	require.NoError(t, err)

	got, err := svc.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "https://img.example.com/ada.png", got.ImageURL)
}

func TestHandleUpdatedUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	err := svc.HandleUpdated(context.Background(), "missing", &Update{Name: stringPtr("Ada")})
	require.Error(t, err)
	assert.True(t, cerrors.IsNotFound(err))
}

func TestHandleDeleted(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	require.NoError(t, svc.HandleCreated(context.Background(), &User{ID: "u1"}))

	require.NoError(t, svc.HandleDeleted(context.Background(), "u1"))

	_, err := svc.GetUserByID(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, cerrors.IsNotFound(err))

	// Redelivered deletes are a no-op.
	require.NoError(t, svc.HandleDeleted(context.Background(), "u1"))
}

func TestHasAccess(t *testing.T) {
	repo := NewMemoryRepository().(*memoryRepository)
	svc := NewService(repo)
	repo.users["u1"] = &User{ID: "u1", EnrolledCourses: []string{"c1"}}

	has, err := svc.HasAccess(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasAccess(context.Background(), "u1", "c2")
	require.NoError(t, err)
	assert.False(t, has)
}
