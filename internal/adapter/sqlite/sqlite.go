// Package sqlite implements the key/value backend on a SQLite-dialect
// database: a local file through modernc.org/sqlite or a remote Turso
// database through the libsql client.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"forge/internal/domain"
	"forge/internal/store"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverLibSQL = "libsql"
)

// DB wraps a *sql.DB holding the records table.
type DB struct {
	sql *sql.DB
}

var _ store.Backend = (*DB)(nil)

// Open connects with driver ("sqlite" or "libsql") and ensures the schema.
// For the local driver dsn is a file path whose directory is created.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
	case DriverLibSQL:
	default:
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}

	s, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		s.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

func ensureDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS records (
  account TEXT NOT NULL,
  kind TEXT NOT NULL,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  PRIMARY KEY (account, kind)
);`
	if _, err := d.sql.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (d *DB) Get(ctx context.Context, key domain.Key) ([]byte, error) {
	var value string
	err := d.sql.QueryRowContext(ctx,
		"SELECT value FROM records WHERE account = ? AND kind = ?",
		key.Account, string(key.Kind),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), nil
}

// Put replaces the value stored under key.
func (d *DB) Put(ctx context.Context, key domain.Key, value []byte) error {
	const stmt = `
INSERT INTO records (account, kind, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(account, kind) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;`
	_, err := d.sql.ExecContext(ctx, stmt,
		key.Account, string(key.Kind), string(value), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (d *DB) Delete(ctx context.Context, key domain.Key) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM records WHERE account = ? AND kind = ?",
		key.Account, string(key.Kind),
	)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
