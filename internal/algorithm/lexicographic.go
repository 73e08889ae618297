package algorithm

import (
	"context"
	"math"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// lexicographicStrategy optimizes the objectives in strict priority order:
// coverage, then gaps, then late placements, then slot reward, then load
// balance. Each repair stage targets one objective and is accepted only if
// it does not worsen any objective ahead of it in the order. Restarts vary
// the construction and the best vector wins.
type lexicographicStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "lexicographic",
		Category:    fitness.CategorySearch,
		Description: "staged repair with a strict coverage > gaps > late > reward > balance priority",
		Params: []ParamSpec{
			seedSpec,
			{Name: "restarts", Type: ParamInt, Default: 6, Description: "independent construction attempts"},
		},
		New: func() Strategy {
			return &lexicographicStrategy{base: newBase("lexicographic", fitness.CategorySearch)}
		},
	})
}

func (s *lexicographicStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	restarts := s.params.Int("restarts", 6)
	if restarts < 1 {
		restarts = 1
	}

	var best []domain.Assignment
	var bestVec []float64

	attempts := 0
	for r := 0; r < restarts; r++ {
		if ctx.Err() != nil {
			break
		}
		attempts++
		candidate := s.stagedRepair()
		vec := lexVector(s.snap, candidate)
		if best == nil || lexBetter(vec, bestVec) {
			best, bestVec = candidate, vec
		}
	}

	if best == nil {
		return s.failure(StatusFailed, elapsed(), nil)
	}
	return s.result(best, elapsed(), map[string]any{
		"restarts":  attempts,
		"uncovered": int(bestVec[0]),
		"gaps":      int(bestVec[1]),
		"late":      int(bestVec[2]),
	})
}

// stagedRepair runs the stage pipeline once. Every stage proposal is
// gated by the priority order: a transform that would trade away a
// higher-priority objective is rejected outright.
func (s *lexicographicStrategy) stagedRepair() []domain.Assignment {
	current, _ := solution.Dedup(s.snap, constructConsecutive(s.snap, s.rng))

	apply := func(proposal []domain.Assignment) {
		if lexBetterOrEqual(lexVector(s.snap, proposal), lexVector(s.snap, current)) {
			current = proposal
		}
	}

	// Stage 1, coverage: place anything the construction left out.
	apply(coverMissing(s.snap, current))
	// Stage 2, gaps: pack every room toward its anchor.
	proposal, _ := solution.GapFree(s.snap, current)
	proposal, _ = solution.Dedup(s.snap, proposal)
	apply(proposal)
	// Stage 3, late: pull late defenses forward.
	relocated, _, _ := solution.RelocateLate(s.snap, current)
	apply(relocated)
	// Stage 4, reward: reflow everything to the earliest feasible cells.
	reflowed, _ := solution.Reflow(s.snap, current)
	apply(reflowed)
	// Stage 5, balance: shift jury duty off the most-loaded instructors.
	apply(rebalanceJuries(s.snap, current))

	return current
}

// lexVector orders the objectives by priority; every entry is minimized.
func lexVector(snap *domain.Snapshot, assignments []domain.Assignment) []float64 {
	reward := 0
	loads := make(map[int]int)
	total := 0
	for _, a := range assignments {
		if ts, ok := snap.TimeslotByID(a.TimeslotID); ok {
			reward += ts.Reward()
		}
		for _, ins := range a.InstructorIDs {
			loads[ins]++
			total++
		}
	}
	mean := float64(total) / float64(len(snap.Instructors()))
	deviation := 0.0
	for _, ins := range snap.Instructors() {
		deviation += math.Abs(float64(loads[ins.ID]) - mean)
	}

	return []float64{
		float64(len(snap.Projects()) - len(assignments)),
		float64(solution.TotalGaps(snap, assignments)),
		float64(solution.CountLate(snap, assignments)),
		-float64(reward),
		deviation,
	}
}

func lexBetter(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func lexBetterOrEqual(a, b []float64) bool {
	return !lexBetter(b, a)
}

// coverMissing places every project absent from the solution into the
// earliest cell its responsible can attend.
func coverMissing(snap *domain.Snapshot, assignments []domain.Assignment) []domain.Assignment {
	have := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		have[a.ProjectID] = true
	}

	out := domain.CloneAssignments(assignments)
	g := gridFrom(snap, out)
	added := false
	for _, p := range snap.Projects() {
		if have[p.ID] {
			continue
		}
		room, slot, ok := g.earliestCell([]int{p.ResponsibleID})
		if !ok {
			continue
		}
		a := domain.Assignment{
			ProjectID:     p.ID,
			ClassroomID:   room,
			TimeslotID:    slot,
			InstructorIDs: []int{p.ResponsibleID},
			IsMakeup:      p.IsMakeup,
		}
		g.occupy(a)
		out = append(out, a)
		added = true
	}
	if added {
		completeJuries(snap, g, out)
	}
	return out
}

// rebalanceJuries moves surplus jury seats from the most-loaded to the
// least-loaded instructors. Only seats above the project's minimum jury
// size and not held by the responsible are candidates.
func rebalanceJuries(snap *domain.Snapshot, assignments []domain.Assignment) []domain.Assignment {
	out := domain.CloneAssignments(assignments)
	g := gridFrom(snap, out)

	loads := make(map[int]int)
	for _, a := range out {
		for _, ins := range a.InstructorIDs {
			loads[ins]++
		}
	}

	for i := range out {
		a := &out[i]
		p, ok := snap.ProjectByID(a.ProjectID)
		if !ok || len(a.InstructorIDs) <= p.MinJurySize() {
			continue
		}
		for j := 1; j < len(a.InstructorIDs); j++ {
			heavy := a.InstructorIDs[j]
			light := lightestFree(snap, g, loads, a)
			if light == 0 || loads[light]+1 >= loads[heavy] {
				continue
			}
			g.release(*a)
			a.InstructorIDs[j] = light
			g.occupy(*a)
			loads[heavy]--
			loads[light]++
		}
	}
	return out
}

func lightestFree(snap *domain.Snapshot, g *grid, loads map[int]int, a *domain.Assignment) int {
	best := 0
	for _, ins := range snap.Instructors() {
		if a.HasInstructor(ins.ID) || !g.instructorFree(ins.ID, a.TimeslotID) {
			continue
		}
		if best == 0 || loads[ins.ID] < loads[best] {
			best = ins.ID
		}
	}
	return best
}
