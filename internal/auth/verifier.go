package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"learnhub/internal/cerrors"
)

// httpVerifier validates bearer tokens against the identity provider's
// session verification endpoint. The provider owns token semantics; this
// client only consumes the verified caller id it returns.
type httpVerifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPVerifier(baseURL string, timeout time.Duration) TokenVerifier {
	return &httpVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *httpVerifier) Verify(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/v1/sessions/verify", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: identity provider unreachable: %v", cerrors.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token rejected with status %d", resp.StatusCode)
	}

	var session struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", err
	}
	if session.UserID == "" {
		return "", fmt.Errorf("identity provider returned no user id")
	}

	return session.UserID, nil
}

// StaticVerifier maps tokens to caller ids directly. Used in tests and local
// development.
type StaticVerifier map[string]string

func (v StaticVerifier) Verify(ctx context.Context, token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}

	return "", fmt.Errorf("unknown token")
}
