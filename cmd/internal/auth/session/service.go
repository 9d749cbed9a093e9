package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"folio/cmd/identity"
	"folio/cmd/internal/metrics"
	"folio/cmd/security/password"
	"folio/cmd/security/token"
)

// maxPresentedTokenLen bounds inbound token material before any lookup.
const maxPresentedTokenLen = 4096

// Service implements the high-level session operations for folio.
//
// It holds no per-session state: the only mutable state (the refresh token
// and its expiry) lives in the credential store keyed by user. Every
// operation takes the current instant explicitly, so expiry comparisons use
// one wall-clock reading per call and tests can simulate the clock.
type Service struct {
	cfg   Config
	codec *token.Codec
	store identity.Store
	log   *slog.Logger

	// dummyHash keeps unknown-user logins as slow as wrong-password ones.
	dummyHash string
}

// Refreshed is the result of a successful refresh-token exchange.
type Refreshed struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// NewService constructs a Service from configuration and a credential store.
func NewService(cfg Config, store identity.Store, log *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("session: nil store")
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, ErrConfig
	}

	codec, err := token.NewCodec(cfg.SigningKey)
	if err != nil {
		return nil, ErrConfig
	}

	s := &Service{cfg: cfg, codec: codec, store: store, log: log}
	if hash, err := password.Hash("dummy-password-for-timing-only"); err == nil {
		s.dummyHash = hash
	}
	return s, nil
}

// Login verifies username/password and mints an access token carrying the
// user's identity claims. It does not touch the refresh token; callers
// rotate explicitly after a successful login, so login and refresh share
// one rotation path.
//
// Unknown usernames and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, now time.Time, username, pass string) (string, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			// Burn a verify so unknown users cost the same as bad passwords.
			if s.dummyHash != "" {
				_ = password.Verify(s.dummyHash, pass)
			}
			metrics.LoginTotal.WithLabelValues("fail").Inc()
			s.log.Info("auth.login.fail", "reason", "unknown_user")
			return "", ErrBadCredentials
		}
		return "", err
	}

	if !password.Verify(u.PasswordHash, pass) {
		metrics.LoginTotal.WithLabelValues("fail").Inc()
		s.log.Info("auth.login.fail", "reason", "bad_password", "user_id", u.ID)
		return "", ErrBadCredentials
	}

	access, err := s.mintAccessToken(now, u)
	if err != nil {
		return "", err
	}

	metrics.LoginTotal.WithLabelValues("ok").Inc()
	return access, nil
}

// RotateRefreshToken issues a new opaque refresh token for username and
// persists it with its expiry, unconditionally replacing whatever token
// existed. No previous value is retained: a stolen token becomes unusable
// the moment rotation happens again.
func (s *Service) RotateRefreshToken(ctx context.Context, now time.Time, username string) (string, time.Time, error) {
	next, err := newRefreshToken()
	if err != nil {
		return "", time.Time{}, err
	}
	exp := now.Add(s.cfg.RefreshTokenTTL)

	if err := s.store.SetRefreshToken(ctx, username, next, exp); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", time.Time{}, ErrUserNotFound
		}
		return "", time.Time{}, err
	}

	metrics.RotationsTotal.Inc()
	return next, exp, nil
}

// RefreshAccessToken exchanges a presented refresh token for a fresh
// access/refresh pair. The store swap checks ownership and freshness and
// overwrites the stored value in one atomic step, so concurrent refreshes
// with the same token cannot both win. Every successful refresh rotates,
// which bounds a leaked refresh token to a single use.
//
// Unknown, superseded and expired tokens all fail with ErrRefreshTokenInvalid.
func (s *Service) RefreshAccessToken(ctx context.Context, now time.Time, presented string) (Refreshed, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" || len(presented) > maxPresentedTokenLen {
		metrics.RefreshTotal.WithLabelValues("fail").Inc()
		return Refreshed{}, ErrRefreshTokenInvalid
	}

	next, err := newRefreshToken()
	if err != nil {
		return Refreshed{}, err
	}
	exp := now.Add(s.cfg.RefreshTokenTTL)

	u, err := s.store.SwapRefreshToken(ctx, presented, next, exp, now)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			metrics.RefreshTotal.WithLabelValues("fail").Inc()
			s.log.Info("auth.refresh.fail", "reason", "unknown_or_stale_token")
			return Refreshed{}, ErrRefreshTokenInvalid
		}
		return Refreshed{}, err
	}

	access, err := s.mintAccessToken(now, u)
	if err != nil {
		return Refreshed{}, err
	}

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	metrics.RotationsTotal.Inc()
	return Refreshed{
		AccessToken:      access,
		RefreshToken:     next,
		RefreshExpiresAt: exp,
	}, nil
}

// ResolveIdentity re-derives the user record from a valid access token.
//
// The lookup round-trips to the credential store on purpose: a deleted or
// role-changed user is reflected as soon as the short-lived token lapses.
// Tokens are not revoked on account deletion; the lookup failing here is
// the only guard.
func (s *Service) ResolveIdentity(ctx context.Context, now time.Time, accessToken string) (identity.User, error) {
	if err := s.codec.Validate(now, accessToken); err != nil {
		metrics.AccessTokenInvalidTotal.WithLabelValues(reasonLabel(err)).Inc()
		s.log.Info("auth.token.rejected", "reason", err.Error())
		return identity.User{}, ErrAccessTokenInvalid
	}

	claims, err := s.codec.ParseClaims(accessToken)
	if err != nil {
		// Validate parsed this token a moment ago; treat as rejected anyway.
		return identity.User{}, ErrAccessTokenInvalid
	}

	u, err := s.store.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			s.log.Info("auth.token.orphaned", "username", claims.Username)
			return identity.User{}, ErrUserNotFound
		}
		return identity.User{}, err
	}

	return u, nil
}

func (s *Service) mintAccessToken(now time.Time, u identity.User) (string, error) {
	return s.codec.Create(now, s.cfg.AccessTokenTTL, token.Claims{
		Username:    u.Username,
		DisplayName: u.DisplayName,
	})
}

func reasonLabel(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, token.ErrMissingExpiry):
		return "missing_expiry"
	default:
		return "malformed"
	}
}
