// Package session implements folio's login and session lifecycle.
//
// Access tokens are short-lived HMAC-signed JWTs and are never stored
// server-side. Refresh tokens are opaque random strings persisted on the
// user row; rotation overwrites the stored value, which is what invalidates
// the previous token. The stateless/stateful split is deliberate: every
// request validates an access token without touching storage, only the
// infrequent refresh path round-trips to the database.
package session
