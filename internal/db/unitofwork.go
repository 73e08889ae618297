package db

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork brackets schedule publication: a run's rows replace the
// previous schedule inside one transaction, atomically or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork on database/sql transactions.
type SQLiteUnitOfWork struct {
	store *sql.DB
}

func NewSQLiteUnitOfWork(store *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{store: store}
}

// WithinTx runs fn inside a transaction. A returned error or a panic rolls
// back; panics propagate to the caller after the rollback.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.store.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}
