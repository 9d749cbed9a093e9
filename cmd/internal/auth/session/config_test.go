package session

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("FOLIO_AUTH_SIGNING_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("FOLIO_AUTH_ACCESS_TTL_SECONDS", "")
	t.Setenv("FOLIO_AUTH_REFRESH_TTL_DAYS", "")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("unexpected access TTL: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 30*24*time.Hour {
		t.Fatalf("unexpected refresh TTL: %v", cfg.RefreshTokenTTL)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("FOLIO_AUTH_SIGNING_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("FOLIO_AUTH_ACCESS_TTL_SECONDS", "60")
	t.Setenv("FOLIO_AUTH_REFRESH_TTL_DAYS", "7")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.AccessTokenTTL != time.Minute {
		t.Fatalf("unexpected access TTL: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("unexpected refresh TTL: %v", cfg.RefreshTokenTTL)
	}
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing key": {
			"FOLIO_AUTH_SIGNING_KEY": "",
		},
		"short key": {
			"FOLIO_AUTH_SIGNING_KEY": "too-short",
		},
		"bad access ttl": {
			"FOLIO_AUTH_SIGNING_KEY":        "0123456789abcdef0123456789abcdef",
			"FOLIO_AUTH_ACCESS_TTL_SECONDS": "zero",
		},
		"negative refresh ttl": {
			"FOLIO_AUTH_SIGNING_KEY":      "0123456789abcdef0123456789abcdef",
			"FOLIO_AUTH_REFRESH_TTL_DAYS": "-1",
		},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("FOLIO_AUTH_SIGNING_KEY", "")
			t.Setenv("FOLIO_AUTH_ACCESS_TTL_SECONDS", "")
			t.Setenv("FOLIO_AUTH_REFRESH_TTL_DAYS", "")
			for k, v := range env {
				t.Setenv(k, v)
			}

			if _, err := LoadConfigFromEnv(); !errors.Is(err, ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}
}
