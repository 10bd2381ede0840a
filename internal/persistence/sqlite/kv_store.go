// Package sqlite implements the persistence KV interface on an embedded
// SQLite database via the pure-Go modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// KVStore stores independently keyed blobs in a single SQLite table.
type KVStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to the database named by dsn and bootstraps the schema.
func Open(dsn string) (*KVStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}
	// The driver serialises writes; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: bootstrap schema: %w", err)
	}

	return &KVStore{db: db, now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *KVStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the connection is usable.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get returns the blob stored under key, reporting absence without error.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: get %q: %w", key, err)
	}
	return value, true, nil
}

// Apply upserts every entry within one transaction. Either all entries are
// visible afterwards or none are.
func (s *KVStore) Apply(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	// Deterministic write order keeps transaction traces reproducible.
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	stamp := s.now().UTC().Format(time.RFC3339Nano)
	for _, key := range keys {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, entries[key], stamp,
		)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("sqlite: write %q failed (rollback error: %v): %w", key, rbErr, err)
			}
			return fmt.Errorf("sqlite: write %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}
