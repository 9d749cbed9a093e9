package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"folio/cmd/identity"
	"folio/cmd/security/password"
)

func newTestService(t *testing.T) (*Service, *identity.MemoryStore) {
	t.Helper()

	store := identity.NewMemoryStore()
	cfg := DefaultConfig()
	cfg.SigningKey = []byte("0123456789abcdef0123456789abcdef")

	svc, err := NewService(cfg, store, slog.Default())
	require.NoError(t, err)
	return svc, store
}

func addUser(t *testing.T, store *identity.MemoryStore, username, pass string) identity.User {
	t.Helper()

	hash, err := password.HashWithCost(pass, bcrypt.MinCost)
	require.NoError(t, err)
	return store.Add(identity.User{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  "Alice A.",
	})
}

func TestLogin_Success(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, "alice", "correctpw")

	ctx := context.Background()
	now := time.Now().UTC()

	access, err := svc.Login(ctx, now, "alice", "correctpw")
	require.NoError(t, err)
	require.NotEmpty(t, access)

	u, err := svc.ResolveIdentity(ctx, now, access)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, identity.RoleUser, u.Role)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, "alice", "correctpw")

	ctx := context.Background()
	now := time.Now().UTC()

	_, wrongPw := svc.Login(ctx, now, "alice", "wrongpw")
	_, unknown := svc.Login(ctx, now, "mallory", "whatever")

	require.ErrorIs(t, wrongPw, ErrBadCredentials)
	require.ErrorIs(t, unknown, ErrBadCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestRotateRefreshToken_ReplacesValue(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, "alice", "correctpw")

	ctx := context.Background()
	now := time.Now().UTC()

	r1, exp1, err := svc.RotateRefreshToken(ctx, now, "alice")
	require.NoError(t, err)
	r2, _, err := svc.RotateRefreshToken(ctx, now, "alice")
	require.NoError(t, err)

	assert.NotEqual(t, r1, r2, "successive rotations must yield distinct tokens")
	assert.True(t, exp1.After(now))

	// The superseded value is permanently unusable.
	_, err = svc.RefreshAccessToken(ctx, now, r1)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)

	// The live value still works.
	_, err = svc.RefreshAccessToken(ctx, now, r2)
	require.NoError(t, err)
}

func TestRotateRefreshToken_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.RotateRefreshToken(context.Background(), time.Now().UTC(), "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshAccessToken_RotatesOnEveryUse(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, "alice", "correctpw")

	ctx := context.Background()
	now := time.Now().UTC()

	a1, err := svc.Login(ctx, now, "alice", "correctpw")
	require.NoError(t, err)

	r1, _, err := svc.RotateRefreshToken(ctx, now, "alice")
	require.NoError(t, err)

	got, err := svc.RefreshAccessToken(ctx, now.Add(time.Second), r1)
	require.NoError(t, err)
	assert.NotEqual(t, a1, got.AccessToken)
	assert.NotEqual(t, r1, got.RefreshToken)

	// Replay of the consumed token fails.
	_, err = svc.RefreshAccessToken(ctx, now.Add(2*time.Second), r1)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)

	// The pair it returned keeps working.
	u, err := svc.ResolveIdentity(ctx, now.Add(2*time.Second), got.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestRefreshAccessToken_StoredExpiryInPast(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, "alice", "correctpw")

	ctx := context.Background()
	now := time.Now().UTC()

	// Exact value match, but the stored expiry has lapsed.
	require.NoError(t, store.SetRefreshToken(ctx, "alice", "stale-token", now.Add(-time.Minute)))

	_, err := svc.RefreshAccessToken(ctx, now, "stale-token")
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestRefreshAccessToken_RejectsBlankAndOversized(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := svc.RefreshAccessToken(ctx, now, "   ")
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)

	huge := make([]byte, maxPresentedTokenLen+1)
	for i := range huge {
		huge[i] = 'a'
	}
	_, err = svc.RefreshAccessToken(ctx, now, string(huge))
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestResolveIdentity_ExpiredToken(t *testing.T) {
	store := identity.NewMemoryStore()
	cfg := DefaultConfig()
	cfg.SigningKey = []byte("0123456789abcdef0123456789abcdef")
	cfg.AccessTokenTTL = time.Second

	svc, err := NewService(cfg, store, slog.Default())
	require.NoError(t, err)
	addUser(t, store, "alice", "correctpw")

	ctx := context.Background()
	now := time.Now().UTC()

	access, err := svc.Login(ctx, now, "alice", "correctpw")
	require.NoError(t, err)

	// Two simulated seconds later the 1s token is gone.
	_, err = svc.ResolveIdentity(ctx, now.Add(2*time.Second), access)
	require.ErrorIs(t, err, ErrAccessTokenInvalid)
}

func TestResolveIdentity_GarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResolveIdentity(context.Background(), time.Now().UTC(), "not-a-token")
	require.ErrorIs(t, err, ErrAccessTokenInvalid)
}

func TestResolveIdentity_DeletedUser(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, "alice", "correctpw")

	ctx := context.Background()
	now := time.Now().UTC()

	access, err := svc.Login(ctx, now, "alice", "correctpw")
	require.NoError(t, err)

	// Simulate account deletion after the token was issued. The token stays
	// structurally valid; the identity lookup is what fails.
	cfg := DefaultConfig()
	cfg.SigningKey = []byte("0123456789abcdef0123456789abcdef")
	svc2, err := NewService(cfg, identity.NewMemoryStore(), slog.Default())
	require.NoError(t, err)

	_, err = svc2.ResolveIdentity(ctx, now, access)
	require.ErrorIs(t, err, ErrUserNotFound)
}
