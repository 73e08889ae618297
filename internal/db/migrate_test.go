package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"instructors", "classrooms", "timeslots", "projects", "project_assistants", "algorithm_runs", "schedule"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_projects_responsible",
		"idx_runs_started",
		"idx_schedule_project",
		"idx_schedule_slot",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	// This test verifies OpenDB issues the PRAGMA (a no-op for :memory:).
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	// In-memory DB reports "memory" — that's expected.
	assert.Equal(t, "memory", mode)
}

func TestMigrate_ProjectTypeCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO instructors (id, name, rank) VALUES (10, 'Dr. A', 'faculty')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO projects (id, title, type, responsible_id) VALUES (1, 'P1', 'INVALID', 10)`)
	assert.Error(t, err, "invalid project type should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO projects (id, title, type, responsible_id) VALUES (1, 'P1', 'thesis', 10)`)
	assert.NoError(t, err)
}

func TestMigrate_RunStatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO algorithm_runs (id, algorithm_tag, status, started_at)
		VALUES ('r1', 'greedy', 'INVALID', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid run status should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO algorithm_runs (id, algorithm_tag, status, started_at)
		VALUES ('r1', 'greedy', 'running', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_ProjectAssistantsPrimaryKey_UniquePair(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO instructors (id, name, rank) VALUES (10, 'Dr. A', 'faculty')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO instructors (id, name, rank) VALUES (11, 'B', 'assistant')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO projects (id, title, type, responsible_id) VALUES (1, 'P1', 'interim', 10)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO project_assistants (project_id, instructor_id) VALUES (1, 11)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO project_assistants (project_id, instructor_id) VALUES (1, 11)`)
	assert.Error(t, err, "duplicate assistant pair should violate composite primary key")
}

func TestMigrate_ScheduleDefaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO instructors (id, name) VALUES (10, 'Dr. A')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO classrooms (id, name) VALUES (100, 'D101')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO timeslots (id, start_time) VALUES (200, '09:00')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO projects (id, title, responsible_id) VALUES (1, 'P1', 10)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO schedule (project_id, classroom_id, timeslot_id) VALUES (1, 100, 200)`)
	require.NoError(t, err)

	var isMakeup int
	var instructorIDs string
	err = db.QueryRow(`SELECT is_makeup, instructor_ids FROM schedule WHERE project_id = 1`).Scan(&isMakeup, &instructorIDs)
	require.NoError(t, err)
	assert.Equal(t, 0, isMakeup)
	assert.Equal(t, "[]", instructorIDs)
}
