// Package database provides database connections and migration management for
// the remote (PostgreSQL) store.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open opens a PostgreSQL connection pool. sql.Open does not connect; use
// db.Ping to verify reachability. An unreachable remote is not fatal — every
// storage operation degrades to the local fallback store per call.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
