package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS instructors (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		rank TEXT NOT NULL DEFAULT 'faculty'
		     CHECK(rank IN ('faculty','assistant')),
		load INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS classrooms (
		id       INTEGER PRIMARY KEY,
		name     TEXT NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 30,
		active   INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS timeslots (
		id         INTEGER PRIMARY KEY,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL DEFAULT '',
		is_morning INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id             INTEGER PRIMARY KEY,
		title          TEXT NOT NULL DEFAULT '',
		type           TEXT NOT NULL DEFAULT 'interim'
		               CHECK(type IN ('interim','thesis','ara','bitirme','final')),
		responsible_id INTEGER NOT NULL REFERENCES instructors(id),
		co_advisor_id  INTEGER REFERENCES instructors(id),
		is_makeup      INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_responsible ON projects(responsible_id)`,

	`CREATE TABLE IF NOT EXISTS project_assistants (
		project_id    INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		instructor_id INTEGER NOT NULL REFERENCES instructors(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, instructor_id)
	)`,

	`CREATE TABLE IF NOT EXISTS algorithm_runs (
		id                TEXT PRIMARY KEY,
		algorithm_tag     TEXT NOT NULL,
		parameters        TEXT NOT NULL DEFAULT '{}',
		data              TEXT NOT NULL DEFAULT '{}',
		status            TEXT NOT NULL DEFAULT 'running'
		                  CHECK(status IN ('running','completed','failed')),
		result            TEXT,
		error             TEXT,
		execution_seconds REAL NOT NULL DEFAULT 0,
		started_at        TEXT NOT NULL,
		completed_at      TEXT,
		user_id           TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_started ON algorithm_runs(started_at)`,

	`CREATE TABLE IF NOT EXISTS schedule (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id     INTEGER NOT NULL REFERENCES projects(id),
		classroom_id   INTEGER NOT NULL REFERENCES classrooms(id),
		timeslot_id    INTEGER NOT NULL REFERENCES timeslots(id),
		is_makeup      INTEGER NOT NULL DEFAULT 0,
		instructor_ids TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_project ON schedule(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_slot ON schedule(timeslot_id)`,
}
