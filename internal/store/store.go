package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for bookings and customers.
type Store struct {
	db *sqlx.DB
}

// Open creates or opens a SQLite database at the given path and ensures
// the schema exists.
//
// The database is configured with:
//   - WAL mode
//   - NORMAL synchronous mode
//   - 5-second busy timeout
//
// Every failure is returned as an *InitError.
// This function is idempotent - safe to call multiple times on the same path.
func Open(path string) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, &InitError{Path: path, Stage: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &InitError{Path: path, Stage: "connect", Err: err}
	}

	// One connection for the process lifetime; ":memory:" databases are
	// per-connection, so a second connection would see an empty schema.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &InitError{Path: path, Stage: "pragmas", Err: err}
	}

	if err := applySchema(context.Background(), db); err != nil {
		db.Close()
		return nil, &InitError{Path: path, Stage: "schema", Err: err}
	}

	return &Store{db: db}, nil
}

// Initialize creates the bookings and customers tables if they are absent.
// Existing tables and rows are left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	if err := applySchema(ctx, s.db); err != nil {
		return &InitError{Stage: "schema", Err: err}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables and indexes if they don't exist.
// This function is idempotent.
func applySchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
