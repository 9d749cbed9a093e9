package identity

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// MemoryStore is an in-process Store for dev mode and tests.
// All methods are safe for concurrent use; SwapRefreshToken performs its
// compare-and-overwrite under one lock, mirroring the Postgres guarantee.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*User // keyed by username
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*User)}
}

// Add inserts a user, assigning a ULID and creation time when absent.
// It returns the stored record.
func (s *MemoryStore) Add(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = ulid.Make().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}

	cp := u
	s.users[u.Username] = &cp
	return u
}

// GetByUsername returns a copy of the user record.
func (s *MemoryStore) GetByUsername(_ context.Context, username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

// SetRefreshToken overwrites the user's refresh token unconditionally.
func (s *MemoryStore) SetRefreshToken(_ context.Context, username, refreshToken string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	tok := refreshToken
	exp := expiresAt
	u.RefreshToken = &tok
	u.RefreshTokenExpiresAt = &exp
	return nil
}

// SwapRefreshToken replaces presented atomically when it is still live.
func (s *MemoryStore) SwapRefreshToken(_ context.Context, presented, replacement string, expiresAt, now time.Time) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.RefreshToken == nil || *u.RefreshToken != presented {
			continue
		}
		if u.RefreshTokenExpiresAt == nil || !u.RefreshTokenExpiresAt.After(now) {
			// Expired tokens are indistinguishable from unknown ones.
			return User{}, ErrNotFound
		}
		tok := replacement
		exp := expiresAt
		u.RefreshToken = &tok
		u.RefreshTokenExpiresAt = &exp
		return *u, nil
	}
	return User{}, ErrNotFound
}
