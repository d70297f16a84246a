// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// busyTimeout is how long a writer waits for the database lock before giving up with
// SQLITE_BUSY, which surfaces as models.ErrConflict.
const busyTimeout = 5 * time.Second

// SQLiteStore implements storage.Store using SQLite.
//
// Transactions are opened with BEGIN IMMEDIATE, so a transaction holds the write lock
// from its first statement. Reads inside a transaction therefore observe every
// previously committed write and no other writer can interleave.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the clock used for default record dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		s.now = now
	}
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection, not just the first one.
	dsn := fmt.Sprintf(
		"%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		dbPath, busyTimeout.Milliseconds(),
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	// Run migrations
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// withTx runs fn inside one transaction, committing only if fn succeeds.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		if c := classify(err); c != err {
			return c
		}
		return fmt.Errorf("%w: failed to begin transaction: %v", models.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// classify maps driver failures onto the models error taxonomy.
// Errors that already carry a sentinel, and unrecognized errors, are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %v", models.ErrConflict, err)
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return err
}

// targetTables describes where a target kind lives in the schema.
type targetTables struct {
	table        string // groups | challenges
	amountColumn string // current_savings | current_amount
	members      string // group_members | challenge_members
	memberKey    string // group_id | challenge_id
}

func tablesFor(kind models.TargetKind) (targetTables, error) {
	switch kind {
	case models.TargetGroup:
		return targetTables{"groups", "current_savings", "group_members", "group_id"}, nil
	case models.TargetChallenge:
		return targetTables{"challenges", "current_amount", "challenge_members", "challenge_id"}, nil
	}
	return targetTables{}, fmt.Errorf("%w: unknown target kind %q", models.ErrValidation, kind)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// requireUser returns models.ErrNotFound if userID does not exist.
func requireUser(ctx context.Context, q queryer, userID string) error {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	return nil
}

// requireTarget returns models.ErrNotFound if the target does not exist.
func requireTarget(ctx context.Context, q queryer, t targetTables, targetID string) error {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+t.table+" WHERE id = ?", targetID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s %s", models.ErrNotFound, t.table, targetID)
	}
	if err != nil {
		return fmt.Errorf("failed to check %s existence: %w", t.table, err)
	}
	return nil
}

// today returns the store clock's current calendar date.
func (s *SQLiteStore) today() time.Time {
	return models.Day(s.now())
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt date %q: %w", s, err)
	}
	return d, nil
}
