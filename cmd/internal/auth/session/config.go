package session

import (
	"os"
	"strconv"
	"strings"
	"time"

	"folio/cmd/security/token"
)

// Config defines runtime configuration for the session subsystem.
//
// The signing key is process-wide state loaded once at startup and passed
// into NewService explicitly; nothing in this package reads globals after
// construction.
type Config struct {
	// SigningKey is the symmetric HMAC key for access tokens.
	// It must be high-entropy and kept outside source control.
	SigningKey []byte

	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL time.Duration

	// RefreshTokenTTL is the lifetime of a refresh token.
	RefreshTokenTTL time.Duration
}

// DefaultConfig returns TTL defaults suitable for development.
// The signing key has no default; it must come from the environment.
func DefaultConfig() Config {
	return Config{
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - FOLIO_AUTH_SIGNING_KEY (min 32 bytes)
//
// Optional:
//   - FOLIO_AUTH_ACCESS_TTL_SECONDS (positive integer)
//   - FOLIO_AUTH_REFRESH_TTL_DAYS  (positive integer)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("FOLIO_AUTH_ACCESS_TTL_SECONDS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, ErrConfig
		}
		cfg.AccessTokenTTL = time.Duration(n) * time.Second
	}

	if v := strings.TrimSpace(os.Getenv("FOLIO_AUTH_REFRESH_TTL_DAYS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTokenTTL = time.Duration(n) * 24 * time.Hour
	}

	key := strings.TrimSpace(os.Getenv("FOLIO_AUTH_SIGNING_KEY"))
	if len(key) < token.MinKeyBytes {
		return Config{}, ErrConfig
	}
	cfg.SigningKey = []byte(key)

	return cfg, nil
}
