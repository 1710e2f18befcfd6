package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNoStore is returned by every method of a nil *DB, so callers can hold an
// optional store without nil checks.
var ErrNoStore = errors.New("delivery store not configured")

type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite database at path. It does not run
// migrations; call MigrateUp.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite has a single writer; serialize all access through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000; PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure %s: %w", path, err)
	}
	return &DB{db}, nil
}

// Close closes the database. Closing a nil store is a no-op.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}
