// Package tokenstore persists single-use refresh-token records and implements
// their atomic redemption.
//
// # Redemption contract
//
// Redeem is fetch-and-delete in one step. For any record id, of N concurrent
// Redeem calls exactly one returns the record; the others return ErrNotFound.
// A record that has expired is treated as absent.
//
// # Architecture boundaries
//
// This package owns record persistence and the redemption invariant. Token
// parsing, signing, and the decision of what a redeemed record means belong
// to the Service and the jwt package.
//
// # What this package must NOT do
//
//   - Inspect or validate JWTs.
//   - Import meetauth or jwt.
//   - Silently overwrite an existing record id.
package tokenstore
