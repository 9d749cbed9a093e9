// Package token implements folio's access-token codec.
//
// Access tokens are compact JWS strings signed with HMAC-SHA256 over the
// serialized claims. Expiry lives inside the signed payload, so nobody can
// extend a token's life without the signing key. Tokens are stateless:
// nothing here touches storage.
package token
