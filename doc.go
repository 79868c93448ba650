// Package meetauth provides a JWT-based authentication engine with short-lived
// access tokens and single-use rotating refresh tokens.
//
// The package is designed for concurrent server workloads: Service methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// meetauth is the public surface. It exposes [Service], [Builder], [Config], and value
// types (TokenPair, MetricsSnapshot, AuditEvent, etc.). Token signing lives in jwt/,
// refresh-token persistence behind [tokenstore.Store], and password hashing in password/.
//
// # What this package must NOT do
//
//   - Expose Redis clients, database handles, or record encodings in its public API.
//   - Perform I/O outside of Service methods (construction via Builder is
//     allocation-only until Build).
//   - Import any sub-package that re-imports meetauth (no import cycles).
//
// # Refresh contract
//
// Every refresh token is bound to exactly one stored record. Redeeming a record is
// atomic: of N concurrent refreshes carrying the same token, exactly one succeeds and
// the rest observe [ErrRefreshReuse]. A successful refresh issues a new token pair
// whose refresh token is bound to a freshly inserted record.
package meetauth
