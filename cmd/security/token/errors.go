package token

import "errors"

// Public, stable errors for callers.
var (
	// ErrMalformed is returned when a token cannot be parsed at all.
	ErrMalformed = errors.New("token malformed")

	// ErrSignatureInvalid is returned when the HMAC tag does not match.
	ErrSignatureInvalid = errors.New("token signature invalid")

	// ErrMissingExpiry is returned when a structurally valid token carries no exp claim.
	ErrMissingExpiry = errors.New("token missing expiry")

	// ErrExpired is returned when the exp claim is not in the future.
	ErrExpired = errors.New("token expired")

	// ErrKeyTooShort is returned when the signing key is below the minimum length.
	ErrKeyTooShort = errors.New("signing key too short")
)
