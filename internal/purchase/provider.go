package purchase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"learnhub/internal/cerrors"
)

// Provider is the payment provider API used to create checkout sessions and
// to resolve a webhook's payment-level reference to the domain purchase id.
type Provider interface {
	// CreateCheckout registers a checkout session for the purchase and
	// returns the provider checkout handle the client is redirected to.
	CreateCheckout(ctx context.Context, p *Purchase) (string, error)
	// PurchaseIDForRef resolves an external payment reference to the
	// purchase id recorded in the session metadata.
	PurchaseIDForRef(ctx context.Context, externalRef string) (string, error)
}

type httpProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider returns a Provider backed by the payment provider's REST
// API. Every call is bounded by the given timeout; timeouts and 5xx responses
// classify as transient.
func NewHTTPProvider(baseURL string, apiKey string, timeout time.Duration) Provider {
	return &httpProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type checkoutSession struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Metadata struct {
		PurchaseID string `json:"purchaseId"`
	} `json:"metadata"`
}

func (p *httpProvider) CreateCheckout(ctx context.Context, purchase *Purchase) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount": purchase.Amount,
		"metadata": map[string]string{
			"purchaseId": purchase.ID,
			"courseId":   purchase.CourseID,
			"userId":     purchase.UserID,
		},
	})
	if err != nil {
		return "", err
	}

	var session checkoutSession
	err = p.do(ctx, http.MethodPost, "/v1/checkout-sessions", bytes.NewReader(body), &session)
	if err != nil {
		return "", err
	}

	return session.URL, nil
}

func (p *httpProvider) PurchaseIDForRef(ctx context.Context, externalRef string) (string, error) {
	var session checkoutSession
	err := p.do(ctx, http.MethodGet, "/v1/checkout-sessions/"+externalRef, nil, &session)
	if err != nil {
		return "", err
	}
	if session.Metadata.PurchaseID == "" {
		return "", fmt.Errorf("session %s carries no purchase id: %w", externalRef, cerrors.ErrValidation)
	}

	return session.Metadata.PurchaseID, nil
}

func (p *httpProvider) do(ctx context.Context, method string, path string, body *bytes.Reader, out interface{}) error {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, p.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: payment provider unreachable: %v", cerrors.ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: payment provider returned 404 for %s", cerrors.ErrNotFound, path)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: payment provider returned %d", cerrors.ErrTransient, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: payment provider returned %d", cerrors.ErrValidation, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
