package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/testutil"
)

func TestDataSource_LoadSnapshot_FromSeed(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedDemoData(ctx, database))

	snap, err := NewSQLiteDataSource(database).LoadSnapshot(ctx, 0)
	require.NoError(t, err)
	require.NoError(t, snap.Validate())

	assert.Len(t, snap.Projects(), 20)
	assert.Len(t, snap.Instructors(), 8)
	assert.Len(t, snap.Classrooms(), 4)
	assert.Len(t, snap.SortedTimeslots(), 14)

	// Slots come back chronologically sorted.
	slots := snap.SortedTimeslots()
	for i := 1; i < len(slots); i++ {
		assert.LessOrEqual(t, slots[i-1].Start, slots[i].Start)
	}
}

func TestDataSource_LoadSnapshot_MaxRoomsCap(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedDemoData(ctx, database))

	snap, err := NewSQLiteDataSource(database).LoadSnapshot(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, snap.Classrooms(), 2)
}

func TestDataSource_LoadSnapshot_SkipsInactiveClassrooms(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedDemoData(ctx, database))

	_, err := database.ExecContext(ctx, `UPDATE classrooms SET active = 0 WHERE id = 100`)
	require.NoError(t, err)

	snap, err := NewSQLiteDataSource(database).LoadSnapshot(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, snap.Classrooms(), 3)
	_, ok := snap.ClassroomByID(100)
	assert.False(t, ok)
}

func TestDataSource_LoadSnapshot_ProjectDetails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedDemoData(ctx, database))

	snap, err := NewSQLiteDataSource(database).LoadSnapshot(ctx, 0)
	require.NoError(t, err)

	p, ok := snap.ProjectByID(1)
	require.True(t, ok)
	assert.Equal(t, domain.ProjectThesis, p.Type)
	assert.Equal(t, 10, p.ResponsibleID)
	require.NotNil(t, p.CoAdvisorID)
	assert.Equal(t, 14, *p.CoAdvisorID)
	assert.Equal(t, []int{15}, p.AssistantIDs)

	// Seed marks the last two projects as makeup defenses.
	p19, _ := snap.ProjectByID(19)
	p20, _ := snap.ProjectByID(20)
	assert.True(t, p19.IsMakeup)
	assert.True(t, p20.IsMakeup)
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedDemoData(ctx, database))
	require.NoError(t, SeedDemoData(ctx, database))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count))
	assert.Equal(t, 20, count)
}

func TestDataSource_LoadSnapshot_NormalizesLegacyTypes(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := database.Exec(`INSERT INTO instructors (id, name, rank) VALUES (10, 'Dr. A', 'faculty')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO projects (id, title, type, responsible_id) VALUES
		(1, 'Legacy interim', 'ara', 10),
		(2, 'Legacy thesis', 'bitirme', 10)`)
	require.NoError(t, err)

	snap, err := NewSQLiteDataSource(database).LoadSnapshot(ctx, 0)
	require.NoError(t, err)

	interim, ok := snap.ProjectByID(1)
	require.True(t, ok)
	assert.Equal(t, domain.ProjectInterim, interim.Type)

	thesis, ok := snap.ProjectByID(2)
	require.True(t, ok)
	assert.Equal(t, domain.ProjectThesis, thesis.Type)
}
