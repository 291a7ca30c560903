package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/cerrors"
	"learnhub/internal/purchase"
)

func TestParsePaymentEventSucceeded(t *testing.T) {
	event, err := ParsePaymentEvent([]byte(`{"type":"payment.succeeded","data":{"reference":"cs_1"}}`))
	require.NoError(t, err)
	assert.Equal(t, purchase.EventSucceeded, event.Kind)
	assert.Equal(t, "cs_1", event.ExternalRef)
}

func TestParsePaymentEventFailed(t *testing.T) {
	event, err := ParsePaymentEvent([]byte(`{"type":"payment.failed","data":{"reference":"cs_1","failureReason":"card declined"}}`))
	require.NoError(t, err)
	assert.Equal(t, purchase.EventFailed, event.Kind)
	assert.Equal(t, "cs_1", event.ExternalRef)
	assert.Equal(t, "card declined", event.FailureReason)
}

func TestParsePaymentEventUnknownType(t *testing.T) {
	event, err := ParsePaymentEvent([]byte(`{"type":"payment.refund.created","data":{"reference":"cs_1"}}`))
	require.NoError(t, err)
	assert.Equal(t, purchase.EventUnknown, event.Kind)
}

func TestParsePaymentEventMissingReference(t *testing.T) {
	_, err := ParsePaymentEvent([]byte(`{"type":"payment.succeeded","data":{}}`))
	require.Error(t, err)
	assert.True(t, cerrors.IsValidation(err))
}

func TestParsePaymentEventMalformedBody(t *testing.T) {
	_, err := ParsePaymentEvent([]byte(`not json`))
	require.Error(t, err)
	assert.True(t, cerrors.IsValidation(err))
}

func TestParseIdentityEventCreated(t *testing.T) {
	event, err := ParseIdentityEvent([]byte(`{"type":"user.created","data":{"id":"u1","email":"ada@example.com","name":"Ada"}}`))
	require.NoError(t, err)
	assert.Equal(t, IdentityCreated, event.Kind)
	assert.Equal(t, "u1", event.UserID)
	require.NotNil(t, event.User)
	assert.Equal(t, "ada@example.com", event.User.Email)
	assert.Equal(t, "Ada", event.User.Name)
}

func TestParseIdentityEventUpdatedCarriesOnlyPresentFields(t *testing.T) {
	event, err := ParseIdentityEvent([]byte(`{"type":"user.updated","data":{"id":"u1","name":"Ada Lovelace"}}`))
	require.NoError(t, err)
	assert.Equal(t, IdentityUpdated, event.Kind)
	require.NotNil(t, event.Update)
	require.NotNil(t, event.Update.Name)
	assert.Equal(t, "Ada Lovelace", *event.Update.Name)
	assert.Nil(t, event.Update.Email)
	assert.Nil(t, event.Update.ImageURL)
}

func TestParseIdentityEventDeleted(t *testing.T) {
	event, err := ParseIdentityEvent([]byte(`{"type":"user.deleted","data":{"id":"u1"}}`))
	require.NoError(t, err)
	assert.Equal(t, IdentityDeleted, event.Kind)
	assert.Equal(t, "u1", event.UserID)
}

func TestParseIdentityEventUnknownType(t *testing.T) {
	event, err := ParseIdentityEvent([]byte(`{"type":"session.created","data":{"id":"s1"}}`))
	require.NoError(t, err)
	assert.Equal(t, IdentityUnknown, event.Kind)
}
