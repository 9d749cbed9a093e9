package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor applied at registration.
// 12 keeps a single hash around 250ms on current server hardware.
const DefaultCost = 12

// Hash returns a salted bcrypt hash of the supplied password.
// bcrypt generates its own random salt and embeds it in the encoded hash.
func Hash(plain string) (string, error) {
	return HashWithCost(plain, DefaultCost)
}

// HashWithCost is Hash with an explicit work factor.
// Tests and offline tooling use lower costs; servers should stick to DefaultCost.
func HashWithCost(plain string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches the stored encoded hash.
//
// The comparison is delegated to bcrypt's own verify routine, which does not
// short-circuit on early byte mismatch. The boolean is the whole answer:
// a malformed hash and a wrong password are indistinguishable to the caller.
func Verify(encodedHash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(plain)) == nil
}
