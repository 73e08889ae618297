package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/viva/internal/db"
)

// NewTestDB opens a migrated in-memory scheduling store, closed when the
// test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// NewTestUoW wraps the given store in the transactional unit of work the
// orchestrator persists schedules through.
func NewTestUoW(store *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(store)
}
