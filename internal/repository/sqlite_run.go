package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/viva/internal/db"
	"github.com/alexanderramin/viva/internal/domain"
)

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(db db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: db}
}

const runColumns = `id, algorithm_tag, parameters, data, status, result, error, execution_seconds, started_at, completed_at, user_id`

func (r *SQLiteRunRepo) Create(ctx context.Context, rec *domain.RunRecord) error {
	params, err := encodeJSONMap(rec.Parameters)
	if err != nil {
		return err
	}
	data, err := encodeJSONMap(rec.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO algorithm_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, NULL, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.AlgorithmTag,
		params,
		data,
		string(rec.Status),
		rec.Error,
		rec.ExecutionSeconds,
		rec.StartedAt.UTC().Format(time.RFC3339),
		nullableTimeToString(rec.CompletedAt, time.RFC3339),
		rec.UserID,
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) Update(ctx context.Context, rec *domain.RunRecord) error {
	result, err := encodeJSONMap(rec.Result)
	if err != nil {
		return err
	}
	query := `UPDATE algorithm_runs
		SET status = ?, result = ?, error = ?, execution_seconds = ?, completed_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		string(rec.Status),
		result,
		rec.Error,
		rec.ExecutionSeconds,
		nullableTimeToString(rec.CompletedAt, time.RFC3339),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run record: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.RunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM algorithm_runs WHERE id = ?`, id)
	rec, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return rec, err
}

func (r *SQLiteRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM algorithm_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []*domain.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return records, nil
}

func scanRun(scan func(dest ...any) error) (*domain.RunRecord, error) {
	var rec domain.RunRecord
	var status, startedAt string
	var params, data string
	var result, errMsg, completedAt sql.NullString

	err := scan(
		&rec.ID, &rec.AlgorithmTag, &params, &data,
		&status, &result, &errMsg,
		&rec.ExecutionSeconds, &startedAt, &completedAt, &rec.UserID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run row: %w", err)
	}

	rec.Status = domain.RunStatus(status)
	rec.Error = errMsg.String

	if rec.Parameters, err = decodeJSONMap(params); err != nil {
		return nil, fmt.Errorf("run %s parameters: %w", rec.ID, err)
	}
	if rec.Data, err = decodeJSONMap(data); err != nil {
		return nil, fmt.Errorf("run %s data: %w", rec.ID, err)
	}
	if result.Valid {
		if rec.Result, err = decodeJSONMap(result.String); err != nil {
			return nil, fmt.Errorf("run %s result: %w", rec.ID, err)
		}
	}

	if rec.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if completedAt.Valid && completedAt.String != "" {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_at: %w", err)
		}
		rec.CompletedAt = &t
	}
	return &rec, nil
}
