package algorithm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/testutil"
)

// smokeSnapshot is comfortably feasible: 48 cells for 6 projects, four
// faculty to staff thesis juries.
func smokeSnapshot() *domain.Snapshot {
	return testutil.Snapshot(
		[]domain.Project{
			testutil.Interim(1, 10),
			testutil.Interim(2, 11),
			testutil.Interim(3, 12),
			testutil.Interim(4, 13),
			testutil.Interim(5, 10),
			testutil.Thesis(6, 11),
		},
		[]domain.Instructor{
			testutil.Faculty(10), testutil.Faculty(11),
			testutil.Faculty(12), testutil.Faculty(13),
		},
		testutil.Rooms(3),
		testutil.FullDaySlots(),
	)
}

// smokeParams is a superset across all strategies; each picks out the keys
// it recognizes and ignores the rest. Everything is dialed down so the
// whole sweep stays fast.
func smokeParams() Params {
	return Params{
		"seed":              7,
		"iterations":        6,
		"generations":       4,
		"population_size":   8,
		"agents":            8,
		"ants":              6,
		"restarts":          2,
		"memory_size":       6,
		"tenure":            5,
		"candidates":        6,
		"beam_width":        40,
		"max_expansions":    2000,
		"time_limit":        0.5,
		"seed_time":         0.2,
		"polish_iterations": 3,
	}
}

func TestStrategies_EveryTagProducesFullCoverage(t *testing.T) {
	snap := smokeSnapshot()
	params := smokeParams()

	for _, d := range Descriptors() {
		d := d
		t.Run(d.Tag, func(t *testing.T) {
			s := d.New()
			require.NoError(t, s.Initialize(snap, params))

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			res := s.Optimize(ctx)

			require.Equal(t, StatusCompleted, res.Status)
			require.NotEmpty(t, res.Assignments)
			assert.Equal(t, d.Tag, res.AlgorithmTag)
			assert.False(t, res.Degenerate())

			seen := make(map[int]bool)
			for _, a := range res.Assignments {
				assert.False(t, seen[a.ProjectID], "project %d scheduled twice", a.ProjectID)
				seen[a.ProjectID] = true

				p, ok := snap.ProjectByID(a.ProjectID)
				require.True(t, ok, "unknown project %d", a.ProjectID)
				_, ok = snap.ClassroomByID(a.ClassroomID)
				assert.True(t, ok, "unknown classroom %d", a.ClassroomID)
				assert.NotEqual(t, -1, snap.SlotIndex(a.TimeslotID), "unknown timeslot %d", a.TimeslotID)

				assert.GreaterOrEqual(t, len(a.InstructorIDs), p.MinJurySize(),
					"project %d jury below minimum", a.ProjectID)
				for _, id := range a.InstructorIDs {
					_, ok := snap.InstructorByID(id)
					assert.True(t, ok, "unknown instructor %d", id)
				}
			}
			assert.Len(t, seen, len(snap.Projects()), "every project scheduled exactly once")

			fit := s.EvaluateFitness(res.Assignments)
			assert.GreaterOrEqual(t, fit, 0.0)
			assert.LessOrEqual(t, fit, 100.0)
		})
	}
}

func TestStrategies_ExplicitSeedIsDeterministic(t *testing.T) {
	snap := smokeSnapshot()

	for _, tag := range []string{"greedy", "genetic", "simulated-annealing", "pso"} {
		t.Run(tag, func(t *testing.T) {
			run := func() Result {
				d, ok := Lookup(tag)
				require.True(t, ok)
				s := d.New()
				require.NoError(t, s.Initialize(snap, smokeParams()))
				return s.Optimize(context.Background())
			}

			first, second := run(), run()
			assert.Equal(t, first.Assignments, second.Assignments)
			assert.Equal(t, first.Fitness, second.Fitness)
		})
	}
}

func TestStrategies_InitializeRejectsEmptySnapshot(t *testing.T) {
	empty := testutil.Snapshot(nil, nil, nil, nil)
	for _, tag := range []string{"greedy", FallbackTag, "cp-sat"} {
		d, ok := Lookup(tag)
		require.True(t, ok)
		assert.Error(t, d.New().Initialize(empty, Params{}), tag)
	}
}
