package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/innkeep/internal/store"
)

// InjectedFailure is the SQLite error message raised by FailInserts triggers.
const InjectedFailure = "injected write failure"

// OpenStore opens a fresh file-backed store in a temp directory and returns
// it with its path. The store is closed when the test ends.
func OpenStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "innkeep.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, path
}

// FailInserts makes every INSERT into table fail until RestoreInserts is
// called. It installs a BEFORE INSERT trigger through a second connection,
// so the store under test sees a genuine SQLite error.
func FailInserts(t *testing.T, path, table string) {
	t.Helper()
	if err := InjectFailure(path, table, "insert"); err != nil {
		t.Fatalf("FailInserts: %v", err)
	}
}

// FailDeletes makes every DELETE from table fail until RestoreDeletes is called.
func FailDeletes(t *testing.T, path, table string) {
	t.Helper()
	if err := InjectFailure(path, table, "delete"); err != nil {
		t.Fatalf("FailDeletes: %v", err)
	}
}

// RestoreInserts removes the trigger installed by FailInserts.
func RestoreInserts(t *testing.T, path, table string) {
	t.Helper()
	if err := RemoveFailure(path, table, "insert"); err != nil {
		t.Fatalf("RestoreInserts: %v", err)
	}
}

// RestoreDeletes removes the trigger installed by FailDeletes.
func RestoreDeletes(t *testing.T, path, table string) {
	t.Helper()
	if err := RemoveFailure(path, table, "delete"); err != nil {
		t.Fatalf("RestoreDeletes: %v", err)
	}
}

// InjectFailure installs a trigger that aborts every op ("insert" or
// "delete") on table with InjectedFailure. Installing twice is a no-op.
func InjectFailure(path, table, op string) error {
	if err := checkTarget(table, op); err != nil {
		return err
	}
	return execSide(path, fmt.Sprintf(
		`CREATE TRIGGER IF NOT EXISTS %s BEFORE %s ON %s BEGIN SELECT RAISE(ABORT, '%s'); END`,
		triggerName(table, op), strings.ToUpper(op), table, InjectedFailure,
	))
}

// RemoveFailure drops the trigger installed by InjectFailure, if any.
func RemoveFailure(path, table, op string) error {
	if err := checkTarget(table, op); err != nil {
		return err
	}
	return execSide(path, "DROP TRIGGER IF EXISTS "+triggerName(table, op))
}

func checkTarget(table, op string) error {
	switch table {
	case "bookings", "customers":
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	switch op {
	case "insert", "delete":
	default:
		return fmt.Errorf("unknown write op %q", op)
	}
	return nil
}

func triggerName(table, op string) string {
	return fmt.Sprintf("fail_%s_%s", op, table)
}

// execSide runs one statement on a short-lived second connection.
func execSide(path, stmt string) error {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open side connection: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("side connection pragma: %w", err)
	}
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("side connection exec %q: %w", stmt, err)
	}
	return nil
}
