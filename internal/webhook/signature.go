package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"learnhub/internal/cerrors"
)

// SignatureHeader carries the provider signature in the form
// "t=<unix seconds>,v1=<hex hmac>". The signed payload is "<t>.<body>".
const SignatureHeader = "X-Webhook-Signature"

// Tolerance bounds the accepted clock skew between the signature timestamp
// and the receiving server, limiting replay of captured deliveries.
const Tolerance = 5 * time.Minute

// Sign computes the signature header value for a payload. Shared with tests
// and with the local provider imitation.
func Sign(secret string, timestamp time.Time, body []byte) string {
	t := timestamp.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", t)
	mac.Write(body)

	return fmt.Sprintf("t=%d,v1=%s", t, hex.EncodeToString(mac.Sum(nil)))
}

// VerifySignature checks the signature header against the shared secret and
// the raw request body. Any failure classifies as a signature error and must
// reject the request before the body is parsed.
func VerifySignature(secret string, header string, body []byte, now time.Time) error {
	if secret == "" {
		return fmt.Errorf("no webhook secret configured: %w", cerrors.ErrSignature)
	}

	timestamp, signature, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	skew := now.Sub(time.Unix(timestamp, 0))
	if skew > Tolerance || skew < -Tolerance {
		return fmt.Errorf("signature timestamp outside tolerance: %w", cerrors.ErrSignature)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil || !hmac.Equal(expected, provided) {
		return fmt.Errorf("signature mismatch: %w", cerrors.ErrSignature)
	}

	return nil
}

func parseSignatureHeader(header string) (int64, string, error) {
	var timestamp int64
	var signature string

	for _, part := range strings.Split(header, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			t, err := strconv.ParseInt(pair[1], 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("malformed signature timestamp: %w", cerrors.ErrSignature)
			}
			timestamp = t
		case "v1":
			signature = pair[1]
		}
	}

	if timestamp == 0 || signature == "" {
		return 0, "", fmt.Errorf("missing signature header: %w", cerrors.ErrSignature)
	}

	return timestamp, signature, nil
}
