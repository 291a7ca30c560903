package webhook

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/cerrors"
	"learnhub/internal/purchase"
	"learnhub/internal/user"
)

const (
	testPaymentSecret  = "whsec_payment"
	testIdentitySecret = "whsec_identity"
)

type stubProvider struct {
	refs map[string]string
	err  error
}

func (p *stubProvider) CreateCheckout(ctx context.Context, pu *purchase.Purchase) (string, error) {
	return "https://pay.example.com/checkout/" + pu.ID, nil
}

func (p *stubProvider) PurchaseIDForRef(ctx context.Context, externalRef string) (string, error) {
	if p.err != nil {
		return "", p.err
	}

	id, ok := p.refs[externalRef]
	if !ok {
		return "", fmt.Errorf("ref %s: %w", externalRef, cerrors.ErrNotFound)
	}

	return id, nil
}

type fixture struct {
	router    http.Handler
	purchases purchase.Repository
	users     *user.Service
}

func newFixture(t *testing.T, provider purchase.Provider) *fixture {
	t.Helper()

	purchases := purchase.NewMemoryRepository()
	users := user.NewService(user.NewMemoryRepository())
	reconciler := purchase.NewReconciler(purchases, provider)

	return &fixture{
		router:    Routes(testPaymentSecret, testIdentitySecret, reconciler, users),
		purchases: purchases,
		users:     users,
	}
}

func (f *fixture) post(t *testing.T, path string, secret string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set(SignatureHeader, Sign(secret, time.Now(), []byte(body)))
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	return rr
}

func TestPaymentWebhookCompletesPurchase(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{"cs_1": "p1"}})
	require.NoError(t, f.purchases.Create(context.Background(), &purchase.Purchase{
		ID: "p1", UserID: "u1", CourseID: "c1", Status: purchase.StatusPending, CreatedAt: time.Now().UTC(),
	}))

	rr := f.post(t, "/payment", testPaymentSecret, `{"type":"payment.succeeded","data":{"reference":"cs_1"}}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	p, err := f.purchases.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusCompleted, p.Status)
}

func TestPaymentWebhookRejectsBadSignature(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	rr := f.post(t, "/payment", "whsec_wrong", `{"type":"payment.succeeded","data":{"reference":"cs_1"}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPaymentWebhookRejectsMissingReference(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	rr := f.post(t, "/payment", testPaymentSecret, `{"type":"payment.succeeded","data":{}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPaymentWebhookAcknowledgesUnknownType(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	rr := f.post(t, "/payment", testPaymentSecret, `{"type":"payment.refund.created","data":{"reference":"cs_1"}}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPaymentWebhookRequestsRedeliveryOnTransientFailure(t *testing.T) {
	f := newFixture(t, &stubProvider{err: fmt.Errorf("provider timeout: %w", cerrors.ErrTransient)})

	rr := f.post(t, "/payment", testPaymentSecret, `{"type":"payment.succeeded","data":{"reference":"cs_1"}}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestIdentityWebhookCreatesUser(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	body := `{"type":"user.created","data":{"id":"u1","email":"ada@example.com","name":"Ada"}}`
	rr := f.post(t, "/identity", testIdentitySecret, body)
	assert.Equal(t, http.StatusOK, rr.Code)

	u, err := f.users.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
}

func TestIdentityWebhookAbsorbsDuplicateCreated(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	body := `{"type":"user.created","data":{"id":"u1","email":"ada@example.com"}}`
	assert.Equal(t, http.StatusOK, f.post(t, "/identity", testIdentitySecret, body).Code)
	assert.Equal(t, http.StatusOK, f.post(t, "/identity", testIdentitySecret, body).Code)
}

func TestIdentityWebhookAcknowledgesUpdateForUnknownUser(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	body := `{"type":"user.updated","data":{"id":"ghost","name":"Nobody"}}`
	rr := f.post(t, "/identity", testIdentitySecret, body)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestIdentityWebhookRejectsBadSignature(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	body := `{"type":"user.created","data":{"id":"u1"}}`
	rr := f.post(t, "/identity", "whsec_wrong", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestIdentityWebhookRejectsCreatedWithoutID(t *testing.T) {
	f := newFixture(t, &stubProvider{refs: map[string]string{}})

	body := `{"type":"user.created","data":{"email":"ada@example.com"}}`
	rr := f.post(t, "/identity", testIdentitySecret, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
