// Package postgres implements the key/value backend on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"forge/internal/domain"
	"forge/internal/store"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements store.Backend.
type DB struct {
	sql *sql.DB
}

var _ store.Backend = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS records (account_id TEXT NOT NULL, kind TEXT NOT NULL, value JSONB NOT NULL, updated_at TIMESTAMPTZ NOT NULL, PRIMARY KEY (account_id, kind));",
		"CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Get returns the value stored under key.
func (d *DB) Get(ctx context.Context, key domain.Key) ([]byte, error) {
	var value []byte
	err := d.sql.QueryRowContext(ctx,
		"SELECT value FROM records WHERE account_id = $1 AND kind = $2",
		key.Account, string(key.Kind),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put replaces the value stored under key.
func (d *DB) Put(ctx context.Context, key domain.Key, value []byte) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO records (account_id, kind, value, updated_at) VALUES ($1, $2, $3, $4) ON CONFLICT (account_id, kind) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at",
		key.Account, string(key.Kind), string(value), time.Now(),
	)
	return err
}

// Delete removes key.
func (d *DB) Delete(ctx context.Context, key domain.Key) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM records WHERE account_id = $1 AND kind = $2",
		key.Account, string(key.Kind),
	)
	return err
}
