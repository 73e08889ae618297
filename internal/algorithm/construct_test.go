package algorithm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/solution"
	"github.com/alexanderramin/viva/internal/testutil"
)

func constructSnapshot() *domain.Snapshot {
	return testutil.Snapshot(
		[]domain.Project{
			testutil.Interim(1, 10),
			testutil.Interim(2, 10),
			testutil.Interim(3, 11),
			testutil.Interim(4, 12),
			testutil.Thesis(5, 12),
		},
		[]domain.Instructor{testutil.Faculty(10), testutil.Faculty(11), testutil.Faculty(12)},
		testutil.Rooms(2),
		testutil.FullDaySlots(),
	)
}

func TestConstructConsecutive_FullCoverageOnAmpleCapacity(t *testing.T) {
	snap := constructSnapshot()
	out := constructConsecutive(snap, rand.New(rand.NewSource(1)))

	require.Len(t, out, len(snap.Projects()))
	assert.True(t, solution.DetectConflicts(out).None())
}

func TestConstructConsecutive_SameSeedSameSolution(t *testing.T) {
	snap := constructSnapshot()
	first := constructConsecutive(snap, rand.New(rand.NewSource(42)))
	second := constructConsecutive(snap, rand.New(rand.NewSource(42)))
	assert.Equal(t, first, second)
}

func TestConstructConsecutive_GroupsStayConsecutive(t *testing.T) {
	snap := constructSnapshot()
	out := constructConsecutive(snap, rand.New(rand.NewSource(3)))

	// Instructor 10 owns two projects; their block shares a room and sits
	// in adjacent slots.
	var cells []struct{ room, idx int }
	for _, a := range out {
		if a.InstructorIDs[0] == 10 {
			cells = append(cells, struct{ room, idx int }{a.ClassroomID, snap.SlotIndex(a.TimeslotID)})
		}
	}
	require.Len(t, cells, 2)
	assert.Equal(t, cells[0].room, cells[1].room)
	diff := cells[0].idx - cells[1].idx
	if diff < 0 {
		diff = -diff
	}
	assert.Equal(t, 1, diff)
}

func TestConstructConsecutive_ThesisJuryReachesMinimum(t *testing.T) {
	snap := constructSnapshot()
	out := constructConsecutive(snap, rand.New(rand.NewSource(5)))

	for _, a := range out {
		if a.ProjectID == 5 {
			assert.GreaterOrEqual(t, len(a.InstructorIDs), 2)
		}
	}
}

func TestCompleteJuries_PrefersLeastLoadedFaculty(t *testing.T) {
	snap := testutil.Snapshot(
		[]domain.Project{testutil.Thesis(1, 10)},
		[]domain.Instructor{testutil.Faculty(10), testutil.Faculty(11), testutil.Faculty(12)},
		testutil.Rooms(1),
		testutil.MorningSlots(),
	)
	out := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
	}
	g := gridFrom(snap, out)

	completeJuries(snap, g, out)
	require.Len(t, out[0].InstructorIDs, 2)
	assert.NotEqual(t, 10, out[0].InstructorIDs[1])
}

func TestCompleteJuries_RelocatesWhenNoJurorFreeAtSlot(t *testing.T) {
	// Every faculty member is mid-defense at slot 200, so the thesis jury
	// cannot be topped up in place; the defense itself has to move.
	snap := testutil.Snapshot(
		[]domain.Project{
			testutil.Thesis(1, 10),
			testutil.Interim(2, 11),
			testutil.Interim(3, 12),
		},
		[]domain.Instructor{testutil.Faculty(10), testutil.Faculty(11), testutil.Faculty(12)},
		testutil.Rooms(3),
		testutil.MorningSlots(),
	)
	out := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 101, TimeslotID: 200, InstructorIDs: []int{11}},
		{ProjectID: 3, ClassroomID: 102, TimeslotID: 200, InstructorIDs: []int{12}},
	}

	completeJuries(snap, gridFrom(snap, out), out)

	thesis := out[0]
	require.GreaterOrEqual(t, len(thesis.InstructorIDs), 2)
	assert.Equal(t, 10, thesis.InstructorIDs[0], "responsible keeps the chair")
	assert.NotEqual(t, 200, thesis.TimeslotID, "defense moved to seat the juror")
	assert.True(t, solution.DetectConflicts(out).None())
}

func TestCompleteJuries_FallsBackToAssistants(t *testing.T) {
	// The only other instructor is an assistant; the jury still fills.
	snap := testutil.Snapshot(
		[]domain.Project{testutil.Thesis(1, 10)},
		[]domain.Instructor{testutil.Faculty(10), testutil.Assistant(20)},
		testutil.Rooms(1),
		testutil.MorningSlots(),
	)
	out := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
	}

	completeJuries(snap, gridFrom(snap, out), out)
	assert.Equal(t, []int{10, 20}, out[0].InstructorIDs)
}
