// Package identity is folio's credential-store boundary.
//
// The catalog service owns user records; this package only reads the fields
// the auth core needs (password hash, role, refresh-token state) and writes
// refresh-token rotations back. At most one live refresh token exists per
// user: rotation overwrites, it never appends.
package identity
