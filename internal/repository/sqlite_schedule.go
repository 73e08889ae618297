package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/viva/internal/db"
	"github.com/alexanderramin/viva/internal/domain"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database. It
// takes a DBTX so Replace can run against a *sql.Tx for the atomic
// clear-then-insert swap.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(db db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: db}
}

func (r *SQLiteScheduleRepo) Replace(ctx context.Context, rows []domain.ScheduleRow) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule`); err != nil {
		return fmt.Errorf("clearing schedule: %w", err)
	}
	for _, row := range rows {
		ids, err := encodeIntList(row.InstructorIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO schedule (project_id, classroom_id, timeslot_id, is_makeup, instructor_ids)
			VALUES (?, ?, ?, ?, ?)`,
			row.ProjectID, row.ClassroomID, row.TimeslotID, boolToInt(row.IsMakeup), ids,
		)
		if err != nil {
			return fmt.Errorf("inserting schedule row for project %d: %w", row.ProjectID, err)
		}
	}
	return nil
}

func (r *SQLiteScheduleRepo) List(ctx context.Context, makeup *bool) ([]domain.ScheduleRow, error) {
	query := `SELECT id, project_id, classroom_id, timeslot_id, is_makeup, instructor_ids FROM schedule`
	args := []any{}
	if makeup != nil {
		query += ` WHERE is_makeup = ?`
		args = append(args, boolToInt(*makeup))
	}
	query += ` ORDER BY timeslot_id, classroom_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}
	defer rows.Close()

	var out []domain.ScheduleRow
	for rows.Next() {
		var row domain.ScheduleRow
		var isMakeup int
		var ids string
		if err := rows.Scan(&row.ID, &row.ProjectID, &row.ClassroomID, &row.TimeslotID, &isMakeup, &ids); err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		row.IsMakeup = intToBool(isMakeup)
		if row.InstructorIDs, err = decodeIntList(ids); err != nil {
			return nil, fmt.Errorf("schedule row %d: %w", row.ID, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule: %w", err)
	}
	return out, nil
}
