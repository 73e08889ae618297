package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/testutil"
)

func newRunRecord(tag string) *domain.RunRecord {
	return &domain.RunRecord{
		ID:           uuid.New().String(),
		AlgorithmTag: tag,
		Parameters:   map[string]any{"seed": float64(42)},
		Data:         map[string]any{"classroom_count": float64(7)},
		Status:       domain.RunRunning,
		StartedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestRunRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	rec := newRunRecord("greedy")
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "greedy", got.AlgorithmTag)
	assert.Equal(t, domain.RunRunning, got.Status)
	assert.Equal(t, rec.Parameters, got.Parameters)
	assert.Equal(t, rec.Data, got.Data)
	assert.Nil(t, got.Result, "result should be null before completion")
	assert.Nil(t, got.CompletedAt)
	assert.True(t, rec.StartedAt.Equal(got.StartedAt))
}

func TestRunRepo_UpdateToCompleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	rec := newRunRecord("simulated-annealing")
	require.NoError(t, repo.Create(ctx, rec))

	done := time.Now().UTC().Truncate(time.Second)
	rec.Status = domain.RunCompleted
	rec.Result = map[string]any{"fitness": 91.5, "status": "completed"}
	rec.ExecutionSeconds = 1.25
	rec.CompletedAt = &done
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, got.Status)
	assert.Equal(t, 91.5, got.Result["fitness"])
	assert.Equal(t, 1.25, got.ExecutionSeconds)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(db)

	_, err := repo.GetByID(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRunRepo_ListRecent_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		rec := newRunRecord("greedy")
		rec.StartedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, rec))
		ids = append(ids, rec.ID)
	}

	got, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ids[4], got[0].ID)
	assert.Equal(t, ids[3], got[1].ID)
	assert.Equal(t, ids[2], got[2].ID)
}
