package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultStoragePath    = "storage"
	defaultDatabaseURL    = "snapwall.db"
	defaultWebhookTimeout = "10s"
	defaultStateTTL       = "10m"
)

// Config is the full runtime configuration, read from the environment.
// OAuth settings point at a GitLab-shaped identity provider.
type Config struct {
	Port        string
	DatabaseURL string
	StoragePath string

	OAuthClientID     string
	OAuthClientSecret string
	OAuthBaseURL      string // authorize/token endpoints live under this
	IdentityAPIURL    string // REST API root used for profile lookup
	SelfBaseURL       string // public base URL of this service
	OAuthRedirectURL  string // optional frontend to bounce the token to

	WebhookURL     string
	WebhookTimeout time.Duration

	StateTTL         time.Duration
	InboundMailToken string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", defaultPort),
		DatabaseURL:       getEnv("DATABASE_URL", defaultDatabaseURL),
		StoragePath:       getEnv("STORAGE_PATH", defaultStoragePath),
		OAuthClientID:     strings.TrimSpace(os.Getenv("OAUTH_CLIENT_ID")),
		OAuthClientSecret: strings.TrimSpace(os.Getenv("OAUTH_CLIENT_SECRET")),
		OAuthBaseURL:      trimURL(os.Getenv("OAUTH_BASE_URL")),
		IdentityAPIURL:    trimURL(os.Getenv("IDENTITY_API_URL")),
		SelfBaseURL:       trimURL(os.Getenv("SELF_BASE_URL")),
		OAuthRedirectURL:  strings.TrimSpace(os.Getenv("OAUTH_REDIRECT_URL")),
		WebhookURL:        strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
		InboundMailToken:  strings.TrimSpace(os.Getenv("INBOUND_MAIL_TOKEN")),
	}

	var err error
	cfg.WebhookTimeout, err = parseDurationEnv("WEBHOOK_TIMEOUT", defaultWebhookTimeout)
	if err != nil {
		return nil, err
	}

	cfg.StateTTL, err = parseDurationEnv("OAUTH_STATE_TTL", defaultStateTTL)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func trimURL(v string) string {
	return strings.TrimRight(strings.TrimSpace(v), "/")
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return d, nil
}
