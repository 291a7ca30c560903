package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string
	// Port is the port the server should run on.
	Port int
	// FirebaseCredentialsFile is the path to the Firebase service account key.
	FirebaseCredentialsFile string
	// PaymentWebhookSecret is the shared secret used to verify payment
	// provider notifications.
	PaymentWebhookSecret string
	// IdentityWebhookSecret is the shared secret used to verify identity
	// provider notifications.
	IdentityWebhookSecret string
	// PaymentProviderURL is the base URL of the payment provider API.
	PaymentProviderURL string
	// PaymentProviderKey is the API key for the payment provider.
	PaymentProviderKey string
	// IdentityProviderURL is the base URL of the identity provider API used
	// to verify bearer tokens.
	IdentityProviderURL string
	// ProviderTimeout bounds every call to the payment provider.
	ProviderTimeout time.Duration
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:          []string{"http://localhost:3000"},
		Port:                    8080,
		FirebaseCredentialsFile: "firebase-config.json",
		PaymentProviderURL:      "https://api.payments.example.com",
		IdentityProviderURL:     "https://api.identity.example.com",
		ProviderTimeout:         10 * time.Second,
	}
}

// Load builds a ServerConfig from environment variables, falling back to the
// default configuration so main stays lean.
func Load() *ServerConfig {
	cfg := DefaultConfig()

	if origins := os.Getenv("LEARNHUB_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	if port := os.Getenv("LEARNHUB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if creds := os.Getenv("LEARNHUB_FIREBASE_CREDENTIALS"); creds != "" {
		cfg.FirebaseCredentialsFile = creds
	}
	if secret := os.Getenv("LEARNHUB_PAYMENT_WEBHOOK_SECRET"); secret != "" {
		cfg.PaymentWebhookSecret = secret
	}
	if secret := os.Getenv("LEARNHUB_IDENTITY_WEBHOOK_SECRET"); secret != "" {
		cfg.IdentityWebhookSecret = secret
	}
	if url := os.Getenv("LEARNHUB_PAYMENT_PROVIDER_URL"); url != "" {
		cfg.PaymentProviderURL = url
	}
	if key := os.Getenv("LEARNHUB_PAYMENT_PROVIDER_KEY"); key != "" {
		cfg.PaymentProviderKey = key
	}
	if url := os.Getenv("LEARNHUB_IDENTITY_PROVIDER_URL"); url != "" {
		cfg.IdentityProviderURL = url
	}
	if timeout := os.Getenv("LEARNHUB_PROVIDER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.ProviderTimeout = d
		}
	}

	return cfg
}
