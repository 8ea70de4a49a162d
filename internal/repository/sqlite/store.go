// Package sqlite implements the local fallback store: a device-resident
// SQLite database mirroring the logical schema of the remote store. It is
// used per call whenever a remote operation fails.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the fallback database at path and ensures
// the schema exists. Use ":memory:" for tests.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open fallback database: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// createSchema creates all fallback tables. Safe to call multiple times.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create fallback schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('ATTEND', 'PROXY')),
    submitted_at TEXT NOT NULL,
    agreed_to_policy INTEGER NOT NULL DEFAULT 1,
    delegate_kind TEXT NOT NULL DEFAULT '',
    delegate_name TEXT NOT NULL DEFAULT '',
    signature TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_records_phone ON records (phone);

CREATE TABLE IF NOT EXISTS settings (
    id TEXT PRIMARY KEY CHECK (id = 'config'),
    payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS admins (
    id TEXT PRIMARY KEY,
    login_id TEXT NOT NULL,
    password TEXT NOT NULL,
    display_name TEXT NOT NULL
);
`
