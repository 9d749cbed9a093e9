package identity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_GetByUsername(t *testing.T) {
	s := NewMemoryStore()
	u := s.Add(User{Username: "alice", PasswordHash: "$2a$fake", DisplayName: "Alice"})

	got, err := s.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != u.ID || got.Role != RoleUser {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := s.GetByUsername(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_SwapRefreshToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	s := NewMemoryStore()
	s.Add(User{Username: "alice"})

	if err := s.SetRefreshToken(ctx, "alice", "tok-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("SetRefreshToken: %v", err)
	}

	u, err := s.SwapRefreshToken(ctx, "tok-1", "tok-2", now.Add(time.Hour), now)
	if err != nil {
		t.Fatalf("SwapRefreshToken: %v", err)
	}
	if u.Username != "alice" || u.RefreshToken == nil || *u.RefreshToken != "tok-2" {
		t.Fatalf("unexpected user after swap: %+v", u)
	}

	// The superseded value no longer matches anything.
	if _, err := s.SwapRefreshToken(ctx, "tok-1", "tok-3", now.Add(time.Hour), now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for superseded token, got %v", err)
	}
}

func TestMemoryStore_SwapRefreshToken_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	s := NewMemoryStore()
	s.Add(User{Username: "alice"})
	if err := s.SetRefreshToken(ctx, "alice", "tok-1", now.Add(-time.Minute)); err != nil {
		t.Fatalf("SetRefreshToken: %v", err)
	}

	// Exact value match, stale expiry: same failure as no match at all.
	if _, err := s.SwapRefreshToken(ctx, "tok-1", "tok-2", now.Add(time.Hour), now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired token, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole("ADMIN") != RoleAdmin {
		t.Fatalf("ADMIN must parse as RoleAdmin")
	}
	if ParseRole("superuser") != RoleUser {
		t.Fatalf("unknown roles degrade to RoleUser")
	}
	if !RoleAdmin.IsAdmin() || RoleUser.IsAdmin() {
		t.Fatalf("IsAdmin mismatch")
	}
}
