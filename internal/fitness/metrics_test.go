package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/testutil"
)

func scoringSnapshot() *domain.Snapshot {
	return testutil.Snapshot(
		[]domain.Project{
			testutil.Interim(1, 10),
			testutil.Interim(2, 11),
		},
		[]domain.Instructor{testutil.Faculty(10), testutil.Faculty(11)},
		testutil.Rooms(1),
		testutil.FullDaySlots(),
	)
}

// fullCoverage places both projects adjacently at the top of the day with
// reciprocal juries: every weighted axis should be at 100.
func fullCoverage() []domain.Assignment {
	return []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10, 11}},
		{ProjectID: 2, ClassroomID: 100, TimeslotID: 201, InstructorIDs: []int{11, 10}},
	}
}

func TestEvaluate_PerfectSolutionNearMaximum(t *testing.T) {
	snap := scoringSnapshot()
	s := Evaluate(snap, fullCoverage(), DefaultWeights())

	assert.Equal(t, 100.0, s.Coverage)
	assert.Equal(t, 100.0, s.GapPenalty)
	assert.Equal(t, 100.0, s.DuplicatePenalty)
	assert.Equal(t, 100.0, s.LateSlotPenalty)
	assert.Equal(t, 100.0, s.LoadBalance)
	assert.Equal(t, 100.0, s.RoleCompliance)
	assert.Greater(t, s.Total, 90.0)
}

func TestEvaluate_EmptySolutionScoresZeroAxes(t *testing.T) {
	snap := scoringSnapshot()
	s := Evaluate(snap, nil, DefaultWeights())
	assert.Equal(t, 0.0, s.SlotReward)
	assert.Equal(t, 0.0, s.Coverage)
}

func TestCoverageAxis_Binary(t *testing.T) {
	snap := scoringSnapshot()

	partial := fullCoverage()[:1]
	s := Evaluate(snap, partial, DefaultWeights())
	assert.Equal(t, 0.0, s.Coverage, "missing project zeroes the axis")

	duplicated := append(fullCoverage(), domain.Assignment{
		ProjectID: 1, ClassroomID: 100, TimeslotID: 202, InstructorIDs: []int{10},
	})
	s = Evaluate(snap, duplicated, DefaultWeights())
	assert.Equal(t, 0.0, s.Coverage, "double-scheduled project zeroes the axis")
	assert.Equal(t, 0.0, s.DuplicatePenalty)
}

func TestSlotRewardAxis_LatePlacementZeroes(t *testing.T) {
	snap := scoringSnapshot()
	// Slot 213 starts 16:30; its -9999 reward drives the raw total negative.
	late := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 100, TimeslotID: 213, InstructorIDs: []int{11}},
	}
	s := Evaluate(snap, late, DefaultWeights())
	assert.Equal(t, 0.0, s.SlotReward)
	assert.Equal(t, 50.0, s.LateSlotPenalty, "one late placement deducts 50")
}

func TestGapAxis_Binary(t *testing.T) {
	snap := scoringSnapshot()
	gappy := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 100, TimeslotID: 202, InstructorIDs: []int{11}},
	}
	s := Evaluate(snap, gappy, DefaultWeights())
	assert.Equal(t, 0.0, s.GapPenalty)
}

func TestRoleComplianceAxis_ResponsibleMustChair(t *testing.T) {
	snap := scoringSnapshot()
	// Project 1's responsible is 10 but 11 chairs.
	bad := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{11}},
		{ProjectID: 2, ClassroomID: 100, TimeslotID: 201, InstructorIDs: []int{11}},
	}
	s := Evaluate(snap, bad, DefaultWeights())
	assert.Equal(t, 80.0, s.RoleCompliance, "one violation deducts 20")
}

func TestRoleComplianceAxis_ThesisJurySize(t *testing.T) {
	snap := testutil.Snapshot(
		[]domain.Project{testutil.Thesis(1, 10)},
		[]domain.Instructor{testutil.Faculty(10), testutil.Faculty(11)},
		testutil.Rooms(1),
		testutil.MorningSlots(),
	)

	solo := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
	}
	s := Evaluate(snap, solo, DefaultWeights())
	assert.Equal(t, 80.0, s.RoleCompliance, "thesis jury below two is a violation")

	paired := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10, 11}},
	}
	s = Evaluate(snap, paired, DefaultWeights())
	assert.Equal(t, 100.0, s.RoleCompliance)
}

func TestWeightsFor_Families(t *testing.T) {
	def := WeightsFor(CategoryEvolutionary)
	assert.Equal(t, DefaultWeights(), def)
	assert.Equal(t, def, WeightsFor(CategorySwarm))
	assert.Equal(t, def, WeightsFor(CategorySearch))

	exact := WeightsFor(CategoryMathProg)
	assert.Equal(t, exact, WeightsFor(CategoryConstraint))
	assert.Greater(t, exact.Coverage, def.Coverage)
	assert.Less(t, exact.SlotReward, def.SlotReward)

	for _, w := range []Weights{def, exact} {
		sum := w.SlotReward + w.Coverage + w.GapPenalty + w.DuplicatePenalty + w.LoadBalance + w.LateSlotPenalty
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestAxisMap_Keys(t *testing.T) {
	m := Score{}.AxisMap()
	for _, key := range []string{
		"slot_reward", "coverage", "gap_penalty", "duplicate_penalty",
		"load_balance", "late_slot_penalty", "classroom_switch",
		"role_compliance", "session_minimization",
	} {
		require.Contains(t, m, key)
	}
}

func TestClassroomSwitchAxis(t *testing.T) {
	snap := testutil.Snapshot(
		[]domain.Project{testutil.Interim(1, 10), testutil.Interim(2, 10)},
		[]domain.Instructor{testutil.Faculty(10)},
		testutil.Rooms(2),
		testutil.MorningSlots(),
	)
	hopping := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 101, TimeslotID: 201, InstructorIDs: []int{10}},
	}
	s := Evaluate(snap, hopping, DefaultWeights())
	assert.Equal(t, 90.0, s.ClassroomSwitch, "one extra room deducts 10")
}
