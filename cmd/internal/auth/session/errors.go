package session

import "errors"

// Failure causes are intentionally coarse. Expired, forged, mismatched and
// unknown collapse into one externally visible error per operation; the
// fine-grained reason is logged, never returned.
var (
	// ErrBadCredentials is returned by Login for unknown usernames and wrong
	// passwords alike.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrUserNotFound is returned when an operation names a user that does
	// not exist (rotation target, or a valid token whose account is gone).
	ErrUserNotFound = errors.New("user not found")

	// ErrRefreshTokenInvalid covers unknown, superseded and expired refresh
	// tokens. The checks are not distinguished to the caller.
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")

	// ErrAccessTokenInvalid covers malformed, forged, expiry-less and
	// expired access tokens.
	ErrAccessTokenInvalid = errors.New("access token invalid")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
