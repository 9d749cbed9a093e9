// Package password hashes and verifies user passwords with bcrypt.
//
// Registration and login must share one scheme; this package is the single
// source of truth for it. Verify never reports why a password failed.
package password
