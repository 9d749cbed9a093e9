package identity

import (
	"context"
	"strings"
	"time"
)

// Role is a user's authorization role.
type Role string

const (
	// RoleUser is a normal catalog user.
	RoleUser Role = "user"
	// RoleAdmin is an administrator.
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a stored role value. Unknown values degrade to RoleUser.
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role grants administrator rights.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User mirrors the slice of the users row the auth core reads and writes.
//
// RefreshToken and RefreshTokenExpiresAt describe the single live refresh
// token; both are nil until the first rotation.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	DisplayName  string
	Role         Role

	RefreshToken          *string
	RefreshTokenExpiresAt *time.Time

	CreatedAt time.Time
}

// Store abstracts credential persistence.
//
// Implementations must make SwapRefreshToken atomic: the compare and the
// overwrite happen as one storage operation, so two concurrent refreshes
// presenting the same token cannot both succeed.
type Store interface {
	// GetByUsername returns the user record for a username.
	GetByUsername(ctx context.Context, username string) (User, error)

	// SetRefreshToken unconditionally replaces the user's refresh token and
	// its expiry. Whatever token existed before becomes unusable.
	SetRefreshToken(ctx context.Context, username, refreshToken string, expiresAt time.Time) error

	// SwapRefreshToken replaces presented with replacement if and only if
	// presented is the user's current refresh token and its stored expiry is
	// strictly after now. It returns the owning user on success and
	// ErrNotFound when no live token matched.
	SwapRefreshToken(ctx context.Context, presented, replacement string, expiresAt, now time.Time) (User, error)
}
