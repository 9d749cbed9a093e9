package identity

import "errors"

// ErrNotFound is returned when no user matches the lookup,
// including a refresh-token swap that matched no live token.
var ErrNotFound = errors.New("user not found")
