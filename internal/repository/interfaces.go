package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/viva/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// DataSource loads the immutable scheduling snapshot. maxRooms caps the
// classrooms included; zero or negative means no cap.
type DataSource interface {
	LoadSnapshot(ctx context.Context, maxRooms int) (*domain.Snapshot, error)
}

// RunRepo persists algorithm run records.
type RunRepo interface {
	Create(ctx context.Context, r *domain.RunRecord) error
	Update(ctx context.Context, r *domain.RunRecord) error
	GetByID(ctx context.Context, id string) (*domain.RunRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.RunRecord, error)
}

// ScheduleRepo persists the final schedule. Replace is clear-then-insert
// and is expected to run inside a transaction so the swap is atomic.
type ScheduleRepo interface {
	Replace(ctx context.Context, rows []domain.ScheduleRow) error
	List(ctx context.Context, makeup *bool) ([]domain.ScheduleRow, error)
}
