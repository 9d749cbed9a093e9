package session

import (
	"crypto/rand"
	"encoding/base64"
)

// refreshTokenBytes is the entropy of an opaque refresh token: 128 bits.
const refreshTokenBytes = 16

func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	// URL-safe, no padding.
	return base64.RawURLEncoding.EncodeToString(b), nil
}
