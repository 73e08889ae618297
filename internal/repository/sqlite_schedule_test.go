package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/db"
	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/testutil"
)

func seedScheduleRefs(t *testing.T, database db.DBTX) {
	t.Helper()
	ctx := context.Background()
	_, err := database.ExecContext(ctx, `INSERT INTO instructors (id, name) VALUES (10, 'Dr. A'), (11, 'Dr. B')`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, `INSERT INTO classrooms (id, name) VALUES (100, 'D101'), (101, 'D102')`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, `INSERT INTO timeslots (id, start_time) VALUES (200, '09:00'), (201, '09:30')`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx,
		`INSERT INTO projects (id, title, responsible_id, is_makeup) VALUES (1, 'P1', 10, 0), (2, 'P2', 11, 1)`)
	require.NoError(t, err)
}

func TestScheduleRepo_ReplaceAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedScheduleRefs(t, database)
	repo := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	rows := []domain.ScheduleRow{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10, 11}},
		{ProjectID: 2, ClassroomID: 101, TimeslotID: 201, IsMakeup: true, InstructorIDs: []int{11}},
	}
	require.NoError(t, repo.Replace(ctx, rows))

	got, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ProjectID)
	assert.Equal(t, []int{10, 11}, got[0].InstructorIDs)
	assert.False(t, got[0].IsMakeup)
	assert.True(t, got[1].IsMakeup)

	// Replace again: old rows are gone, not appended to.
	require.NoError(t, repo.Replace(ctx, rows[:1]))
	got, err = repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestScheduleRepo_List_MakeupFilter(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedScheduleRefs(t, database)
	repo := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, []domain.ScheduleRow{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 101, TimeslotID: 201, IsMakeup: true, InstructorIDs: []int{11}},
	}))

	makeup := true
	got, err := repo.List(ctx, &makeup)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ProjectID)

	makeup = false
	got, err = repo.List(ctx, &makeup)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ProjectID)
}

func TestScheduleRepo_Replace_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedScheduleRefs(t, database)
	ctx := context.Background()

	// Seed an existing schedule through a plain repo.
	require.NoError(t, NewSQLiteScheduleRepo(database).Replace(ctx, []domain.ScheduleRow{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
	}))

	// Exec 1 is the DELETE, exec 2 the first INSERT. Fail the second INSERT.
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteScheduleRepo(tx).Replace(ctx, []domain.ScheduleRow{
			{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
			{ProjectID: 2, ClassroomID: 101, TimeslotID: 201, InstructorIDs: []int{11}},
		})
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	// The pre-existing schedule must have survived the rollback.
	got, err := NewSQLiteScheduleRepo(database).List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ProjectID)
}
