package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Expected table shape:
//
//	CREATE TABLE refresh_tokens (
//	    id         text PRIMARY KEY,
//	    user_id    text NOT NULL,
//	    expires_at timestamptz NOT NULL
//	);
const (
	stmtInsertToken = `INSERT INTO refresh_tokens (id, user_id, expires_at) VALUES ($1, $2, $3)`
	stmtRedeemToken = `DELETE FROM refresh_tokens WHERE id = $1 RETURNING user_id, expires_at`
)

const pgUniqueViolation = "23505"

// DBTX is the subset of database/sql operations the store needs. *sql.DB and
// *sql.Tx both satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore is a Postgres-backed [Store] built for the pgx stdlib driver.
// Redemption is a single DELETE ... RETURNING statement, so the row-level
// lock taken by DELETE makes one of N concurrent redeems win.
type PostgresStore struct {
	db DBTX
}

// NewPostgres describes the newpostgres operation and its observable behavior.
//
// NewPostgres may return an error when input validation, dependency calls, or security checks fail.
// NewPostgres does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewPostgres(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *PostgresStore) Save(ctx context.Context, record Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, stmtInsertToken, record.ID, record.UserID, record.ExpiresAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Redeem describes the redeem operation and its observable behavior.
//
// Redeem may return an error when input validation, dependency calls, or security checks fail.
// Redeem does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *PostgresStore) Redeem(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	var (
		userID    string
		expiresAt time.Time
	)
	err := s.db.QueryRowContext(ctx, stmtRedeemToken, id).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// The row is already gone either way; an expired grant must not be honored.
	if !time.Now().Before(expiresAt) {
		return nil, ErrNotFound
	}

	return &Record{
		ID:        id,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}
