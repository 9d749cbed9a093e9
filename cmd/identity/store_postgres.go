package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store against the catalog database (folio.users).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed credential store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("identity: nil db pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// GetByUsername loads a user row by username.
func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (User, error) {
	var (
		u    User
		role string
	)

	err := s.pool.QueryRow(ctx, `
		SELECT
			id, username, password_hash, display_name, role,
			refresh_token, refresh_token_expires_at, created_at
		FROM folio.users
		WHERE username = $1
	`, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.DisplayName,
		&role,
		&u.RefreshToken,
		&u.RefreshTokenExpiresAt,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}

	u.Role = ParseRole(role)
	return u, nil
}

// SetRefreshToken overwrites the user's refresh token unconditionally.
func (s *PostgresStore) SetRefreshToken(ctx context.Context, username, refreshToken string, expiresAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE folio.users
		SET refresh_token = $2,
		    refresh_token_expires_at = $3
		WHERE username = $1
	`, username, refreshToken, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SwapRefreshToken is the conditional overwrite that makes rotation safe:
// the WHERE clause carries both the equality and the freshness check, so a
// superseded or expired token matches no row.
func (s *PostgresStore) SwapRefreshToken(ctx context.Context, presented, replacement string, expiresAt, now time.Time) (User, error) {
	var (
		u    User
		role string
	)

	err := s.pool.QueryRow(ctx, `
		UPDATE folio.users
		SET refresh_token = $2,
		    refresh_token_expires_at = $3
		WHERE refresh_token = $1
		  AND refresh_token_expires_at > $4
		RETURNING id, username, password_hash, display_name, role, created_at
	`, presented, replacement, expiresAt, now).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.DisplayName,
		&role,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}

	u.Role = ParseRole(role)
	u.RefreshToken = &replacement
	exp := expiresAt
	u.RefreshTokenExpiresAt = &exp
	return u, nil
}
