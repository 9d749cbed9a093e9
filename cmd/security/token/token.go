package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// MinKeyBytes is the minimum byte length accepted for the HMAC signing key.
// 32 bytes matches the HMAC-SHA256 block recommendation.
const MinKeyBytes = 32

// Claims is the identity payload embedded in an access token.
type Claims struct {
	Username    string `json:"uname"`
	DisplayName string `json:"dname,omitempty"`
	jwt.RegisteredClaims
}

// Codec creates and consumes tamper-evident access tokens with a single
// symmetric key. A Codec is immutable and safe for concurrent use.
type Codec struct {
	key []byte
}

// NewCodec builds a Codec from a signing key.
// Keys shorter than MinKeyBytes are rejected.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) < MinKeyBytes {
		return nil, ErrKeyTooShort
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Codec{key: k}, nil
}

// Create mints a signed token carrying claims plus iat=now and exp=now+ttl.
// Each token gets a unique jti, so two mints for the same identity in the
// same second still produce distinct strings. The output is a compact,
// URL-safe string.
func (c *Codec) Create(now time.Time, ttl time.Duration, claims Claims) (string, error) {
	claims.ID = ulid.Make().String()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.key)
}

// ParseClaims recomputes the integrity tag and returns the embedded claims.
// It checks structure and signature only; an expired token still parses.
// Fails with ErrMalformed or ErrSignatureInvalid.
func (c *Codec) ParseClaims(tokenString string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrSignatureInvalid
		}
		return Claims{}, ErrMalformed
	}

	return claims, nil
}

// Validate reports why tokenString is not acceptable at instant now, or nil.
// Expiry is compared against now with no leeway: exp must be strictly in the
// future. The reason is for logging; callers expose only a merged failure.
func (c *Codec) Validate(now time.Time, tokenString string) error {
	claims, err := c.ParseClaims(tokenString)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return ErrMissingExpiry
	}
	if !claims.ExpiresAt.Time.After(now) {
		return ErrExpired
	}
	return nil
}

// IsValid is the boolean form of Validate.
func (c *Codec) IsValid(now time.Time, tokenString string) bool {
	return c.Validate(now, tokenString) == nil
}

func (c *Codec) keyFunc(_ *jwt.Token) (any, error) {
	return c.key, nil
}
