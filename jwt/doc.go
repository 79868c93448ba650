// Package jwt manages issuance and verification of the access/refresh token
// pair using a shared HMAC secret and strict validation semantics.
//
// # Token format
//
// Both tokens are HS256-signed JWTs. Access tokens carry only the subject and
// expiry. Refresh tokens additionally carry a jti claim referencing the
// single-use record that backs them.
//
// # Architecture boundaries
//
// This package owns claim layout, signing, and structural validation. Record
// persistence, redemption, and reuse detection are handled by the Service and
// the token store.
//
// # What this package must NOT do
//
//   - Access Redis, SQL, or any I/O.
//   - Import meetauth or tokenstore.
//   - Report why a token failed validation; every failure is [ErrTokenInvalid].
package jwt
