package tokenstore

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is an exported constant or variable used by the authentication engine.
	ErrNotFound = errors.New("token record not found")
	// ErrDuplicateID is an exported constant or variable used by the authentication engine.
	ErrDuplicateID = errors.New("token record id already exists")
	// ErrUnavailable is an exported constant or variable used by the authentication engine.
	ErrUnavailable = errors.New("token store backend unavailable")
)

// Record is one stored refresh-token grant. ID doubles as the jti claim of
// the refresh token it backs.
type Record struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// Store is the persistence interface for refresh-token records.
//
// Save inserts a record and returns an error wrapping [ErrDuplicateID] when
// the id is already present; it never overwrites. Redeem atomically removes
// the record with the given id and returns it; absent, already-redeemed, and
// expired records all yield [ErrNotFound]. Redeem is linearizable per id.
type Store interface {
	Save(ctx context.Context, record Record) error
	Redeem(ctx context.Context, id string) (*Record, error)
}

func validateRecord(record Record) error {
	if record.ID == "" {
		return errors.New("token record id must not be empty")
	}
	if record.UserID == "" {
		return errors.New("token record user id must not be empty")
	}
	if record.ExpiresAt.IsZero() {
		return errors.New("token record expiry must be set")
	}
	return nil
}
