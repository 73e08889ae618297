package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/algorithm"
	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/progress"
	"github.com/alexanderramin/viva/internal/repository"
	"github.com/alexanderramin/viva/internal/solution"
	"github.com/alexanderramin/viva/internal/testutil"
)

type recordingNotifier struct {
	mu        sync.Mutex
	envelopes []progress.Envelope
}

func (n *recordingNotifier) Send(userID string, env progress.Envelope) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.envelopes = append(n.envelopes, env)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.envelopes))
	for i, env := range n.envelopes {
		out[i] = env.Type
	}
	return out
}

func newTestOrchestrator(t *testing.T, seed bool) (*Orchestrator, *repository.SQLiteRunRepo, *repository.SQLiteScheduleRepo, *recordingNotifier) {
	t.Helper()
	database := testutil.NewTestDB(t)
	if seed {
		require.NoError(t, repository.SeedDemoData(context.Background(), database))
	}

	notifier := &recordingNotifier{}
	runs := repository.NewSQLiteRunRepo(database)
	schedule := repository.NewSQLiteScheduleRepo(database)
	orch := New(
		repository.NewSQLiteDataSource(database),
		runs,
		testutil.NewTestUoW(database),
		notifier,
		nil,
		nil,
	)
	return orch, runs, schedule, notifier
}

func TestRunAlgorithm_UnknownTag(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator(t, true)

	_, err := orch.RunAlgorithm(context.Background(), "nonexistent", nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	// The message lists the available tags.
	assert.Contains(t, err.Error(), "greedy")
	assert.Contains(t, err.Error(), "comprehensive")
}

func TestRunAlgorithm_GreedyCompletes(t *testing.T) {
	orch, runs, schedule, _ := newTestOrchestrator(t, true)
	ctx := context.Background()

	record, err := orch.RunAlgorithm(ctx, "greedy", algorithm.Params{"seed": 42}, "")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.RunCompleted, record.Status)
	assert.NotNil(t, record.CompletedAt)
	assert.NotEmpty(t, record.Result)

	// The record round-trips through the store.
	stored, err := runs.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, stored.Status)
	assert.Equal(t, "greedy", stored.AlgorithmTag)

	// The schedule was published: every row at most one per project.
	rows, err := schedule.List(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	seen := make(map[int]bool)
	for _, row := range rows {
		assert.False(t, seen[row.ProjectID], "project %d scheduled twice", row.ProjectID)
		seen[row.ProjectID] = true
		assert.NotEmpty(t, row.InstructorIDs)
	}
}

func TestRunAlgorithm_ResultShape(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator(t, true)

	record, err := orch.RunAlgorithm(context.Background(), "comprehensive", algorithm.Params{"seed": 7}, "")
	require.NoError(t, err)

	result := record.Result
	require.NotNil(t, result)
	assert.Contains(t, result, "assignments")
	assert.Contains(t, result, "fitness")
	assert.Contains(t, result, "fitness_breakdown")
	assert.Contains(t, result, "gap_report")
	assert.Contains(t, result, "policy_summary")
	assert.Contains(t, result, "analysis")
	assert.Equal(t, "comprehensive", result["algorithm_tag"])

	breakdown, ok := result["fitness_breakdown"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, breakdown, "coverage")
	assert.Contains(t, breakdown, "slot_reward")
}

func TestRunAlgorithm_EmptySnapshotFailsRecord(t *testing.T) {
	orch, runs, _, _ := newTestOrchestrator(t, false)
	ctx := context.Background()

	record, err := orch.RunAlgorithm(ctx, "greedy", nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySnapshot))

	// The record never stays running.
	require.NotNil(t, record)
	stored, err := runs.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, stored.Status)
	assert.NotEmpty(t, stored.Error)
}

func TestRunAlgorithm_ProgressEventOrder(t *testing.T) {
	orch, _, _, notifier := newTestOrchestrator(t, true)

	_, err := orch.RunAlgorithm(context.Background(), "greedy", algorithm.Params{"seed": 1}, "user-1")
	require.NoError(t, err)

	types := notifier.types()
	require.GreaterOrEqual(t, len(types), 4)
	assert.Equal(t, progress.TypeProgress, types[0])
	assert.Equal(t, progress.TypeComplete, types[len(types)-1])

	// Phases arrive in lifecycle order.
	var phases []string
	notifier.mu.Lock()
	for _, env := range notifier.envelopes {
		if env.Type != progress.TypeProgress {
			continue
		}
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		phases = append(phases, data["phase"].(string))
	}
	notifier.mu.Unlock()
	assert.Equal(t, []string{"starting", "running", "post_processing"}, phases)
}

func TestRunAlgorithm_NoUserID_NoEvents(t *testing.T) {
	orch, _, _, notifier := newTestOrchestrator(t, true)

	_, err := orch.RunAlgorithm(context.Background(), "greedy", algorithm.Params{"seed": 1}, "")
	require.NoError(t, err)
	assert.Empty(t, notifier.types())
}

type stubStrategy struct {
	result algorithm.Result
	panics bool
}

func (s *stubStrategy) Initialize(*domain.Snapshot, algorithm.Params) error { return nil }

func (s *stubStrategy) Optimize(context.Context) algorithm.Result {
	if s.panics {
		panic("boom")
	}
	return s.result
}

func (s *stubStrategy) EvaluateFitness([]domain.Assignment) float64 { return 0 }

func stubDescriptor(tag string, s *stubStrategy) algorithm.Descriptor {
	return algorithm.Descriptor{Tag: tag, New: func() algorithm.Strategy { return s }}
}

func fixtureSnapshot() *domain.Snapshot {
	return testutil.Snapshot(
		[]domain.Project{testutil.Interim(1, 10), testutil.Interim(2, 11)},
		[]domain.Instructor{testutil.Faculty(10), testutil.Faculty(11), testutil.Faculty(12)},
		testutil.Rooms(2),
		testutil.MorningSlots(),
	)
}

func TestExecuteWithFallback_PanicTriggersFallback(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator(t, false)
	snap := fixtureSnapshot()

	desc := stubDescriptor("stub", &stubStrategy{panics: true})
	res, err := orch.executeWithFallback(context.Background(), desc, snap, algorithm.Params{"seed": 3})
	require.NoError(t, err)
	assert.True(t, res.FallbackUsed)
	assert.Equal(t, "stub", res.FallbackFrom)
	assert.Contains(t, res.OriginalError, "panicked")
	assert.NotEmpty(t, res.Assignments)
}

func TestExecuteWithFallback_DegenerateTriggersFallback(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator(t, false)
	snap := fixtureSnapshot()

	desc := stubDescriptor("stub", &stubStrategy{result: algorithm.Result{Status: algorithm.StatusInfeasible}})
	res, err := orch.executeWithFallback(context.Background(), desc, snap, algorithm.Params{"seed": 3})
	require.NoError(t, err)
	assert.True(t, res.FallbackUsed)
	assert.Equal(t, algorithm.FallbackTag, res.AlgorithmTag)
	assert.Contains(t, res.OriginalError, "infeasible")
}

func TestExecuteWithFallback_PSOKeepsDegenerateResult(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator(t, false)
	snap := fixtureSnapshot()

	desc := stubDescriptor("pso", &stubStrategy{result: algorithm.Result{Status: algorithm.StatusInfeasible, AlgorithmTag: "pso"}})
	res, err := orch.executeWithFallback(context.Background(), desc, snap, algorithm.Params{})
	require.NoError(t, err)
	assert.False(t, res.FallbackUsed)
	assert.Equal(t, algorithm.StatusInfeasible, res.Status)
}

func TestExecuteWithFallback_HealthyResultPassesThrough(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator(t, false)
	snap := fixtureSnapshot()

	want := algorithm.Result{
		Status:       algorithm.StatusCompleted,
		AlgorithmTag: "stub",
		Assignments:  []domain.Assignment{{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}}},
	}
	desc := stubDescriptor("stub", &stubStrategy{result: want})
	res, err := orch.executeWithFallback(context.Background(), desc, snap, algorithm.Params{})
	require.NoError(t, err)
	assert.False(t, res.FallbackUsed)
	assert.Equal(t, "stub", res.AlgorithmTag)
}

func TestPostProcess_ClosesGaps(t *testing.T) {
	snap := fixtureSnapshot()
	// Two sessions in one room with a hole between them.
	assignments := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 100, TimeslotID: 203, InstructorIDs: []int{11}},
	}

	out, iterations := postProcess(snap, assignments)
	require.Len(t, out, 2)
	assert.LessOrEqual(t, iterations, maxPostProcessIterations)
	assert.Equal(t, 0, solution.TotalGaps(snap, out))

	// Reflow pulls the second session into the parallel room's first slot,
	// so both sessions land on the earliest slot of the day.
	for _, a := range out {
		assert.Equal(t, 0, snap.SlotIndex(a.TimeslotID))
	}
	assert.True(t, solution.DetectConflicts(out).None())
}

func TestPostProcess_AlreadyTightSolutionStable(t *testing.T) {
	snap := fixtureSnapshot()
	// Both sessions already sit on the day's first slot; no transform can
	// find a strictly earlier cell.
	assignments := []domain.Assignment{
		{ProjectID: 1, ClassroomID: 100, TimeslotID: 200, InstructorIDs: []int{10}},
		{ProjectID: 2, ClassroomID: 101, TimeslotID: 200, InstructorIDs: []int{11}},
	}

	out, _ := postProcess(snap, assignments)
	require.Len(t, out, 2)

	cells := make(map[[2]int]bool, len(out))
	for _, a := range out {
		cells[[2]int{a.ClassroomID, a.TimeslotID}] = true
	}
	assert.True(t, cells[[2]int{100, 200}])
	assert.True(t, cells[[2]int{101, 200}])
}
