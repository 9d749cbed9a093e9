package authapi

import (
	"os"
	"strconv"
	"strings"
)

// Config controls auth API transport behavior.
type Config struct {
	// AccessCookieName and RefreshCookieName are the cookie names the
	// catalog frontend expects.
	AccessCookieName  string
	RefreshCookieName string

	// CookieSecure marks session cookies Secure. Disable only for local
	// plain-HTTP development.
	CookieSecure bool

	MaxBodyBytes int64
}

// LoadConfigFromEnv loads auth API config from environment variables with
// safe defaults.
func LoadConfigFromEnv() Config {
	return Config{
		AccessCookieName:  envString("FOLIO_AUTH_ACCESS_COOKIE", "accessToken"),
		RefreshCookieName: envString("FOLIO_AUTH_REFRESH_COOKIE", "refreshToken"),
		CookieSecure:      envBool("FOLIO_AUTH_COOKIE_SECURE", true),
		MaxBodyBytes:      envInt64("FOLIO_AUTH_MAX_BODY_BYTES", 1<<20), // 1 MiB
	}
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
