// Package db opens and migrates the scheduling store: one SQLite file
// holding the snapshot tables, the run records and the published schedule.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// pragmas applied to every connection before the schema migrates. WAL keeps
// reads open while a run persists its schedule; foreign keys guard the
// schedule rows against dangling project/room/slot references.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
}

// OpenDB opens the scheduling store at path and brings its schema up to
// date. File-backed stores get their parent directory created; ":memory:"
// yields a private in-memory store, which the test helpers rely on.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store directory: %w", err)
		}
	}

	store, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := store.Exec(pragma); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := Migrate(store); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return store, nil
}
