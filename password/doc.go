// Package password implements password hashing and verification with bcrypt.
//
// # Output format
//
// Hashes are standard bcrypt strings:
//
//	$2a$<cost>$<salt+hash>
//
// The cost factor is embedded in the hash, so verification works for hashes
// produced with any cost.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy beyond the
// basic length bounds is enforced by the Service.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other meetauth package.
//   - Log plaintext passwords at runtime.
package password
