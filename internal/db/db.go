package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB with routinecraft-specific helpers.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

// schema contains the full database schema. Chat transcripts are
// deliberately absent: they live only in memory for the duration of a
// routine session.
const schema = `
CREATE TABLE IF NOT EXISTS selections (
    snapshot_key TEXT PRIMARY KEY,
    product_ids TEXT NOT NULL DEFAULT '[]',
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// SaveSelection upserts the ordered product-id list for a snapshot key.
func (d *DB) SaveSelection(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding selection ids: %w", err)
	}

	_, err = d.ExecContext(ctx,
		`INSERT INTO selections (snapshot_key, product_ids, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT(snapshot_key) DO UPDATE SET
		   product_ids = excluded.product_ids,
		   updated_at = excluded.updated_at`,
		key, string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving selection %q: %w", key, err)
	}
	return nil
}

// LoadSelection returns the persisted product-id list for a snapshot key,
// or an empty list when no snapshot exists.
func (d *DB) LoadSelection(ctx context.Context, key string) ([]string, error) {
	var payload string
	err := d.QueryRowContext(ctx,
		`SELECT product_ids FROM selections WHERE snapshot_key = ?`, key,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading selection %q: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(payload), &ids); err != nil {
		return nil, fmt.Errorf("decoding selection %q: %w", key, err)
	}
	return ids, nil
}
