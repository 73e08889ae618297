package algorithm

import (
	"context"
	"time"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// deepSearchStrategy is iterative deepening with greedy rollouts: a
// depth-limited DFS branches over the first `horizon` projects, every
// leaf is completed greedily and scored as a full schedule, and the
// horizon grows until the time limit expires. Shallow horizons give a
// quick baseline; each deepening spends its budget where branching
// actually changes the outcome.
type deepSearchStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "deep-search",
		Category:    fitness.CategorySearch,
		Description: "iterative deepening DFS with greedy completion at the horizon",
		Params: []ParamSpec{
			seedSpec,
			timeLimitSpec,
			{Name: "branching", Type: ParamInt, Default: 3, Description: "candidate slots per project"},
		},
		New: func() Strategy {
			return &deepSearchStrategy{base: newBase("deep-search", fitness.CategorySearch)}
		},
	})
}

func (s *deepSearchStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	limit := s.params.Float("time_limit", 5.0)
	branching := s.params.Int("branching", 3)
	if branching < 1 {
		branching = 1
	}
	deadline := time.Now().Add(time.Duration(limit * float64(time.Second)))

	projects := orderByGroupSize(s.snap)
	n := len(projects)

	var best []domain.Assignment
	bestScore := -1.0
	horizonReached := 0

	for horizon := 1; horizon <= n; horizon++ {
		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}
		d := &deepDive{
			strategy:  s,
			projects:  projects,
			branching: branching,
			horizon:   horizon,
			deadline:  deadline,
			ctx:       ctx,
		}
		d.dive(newGrid(s.snap), nil, 0)
		if d.bestScore > bestScore {
			best, bestScore = d.best, d.bestScore
		}
		horizonReached = horizon
		if d.expired {
			break
		}
	}

	if best == nil {
		return s.failure(StatusFailed, elapsed(), map[string]any{"horizon": horizonReached})
	}
	assignments, _, flagged := solution.RelocateLate(s.snap, best)
	return s.result(assignments, elapsed(), map[string]any{
		"horizon":      horizonReached,
		"late_flagged": flagged,
	})
}

type deepDive struct {
	strategy  *deepSearchStrategy
	projects  []domain.Project
	branching int
	horizon   int
	deadline  time.Time
	ctx       context.Context

	best      []domain.Assignment
	bestScore float64
	expired   bool
}

func (d *deepDive) dive(g *grid, placed []domain.Assignment, depth int) {
	if d.expired || d.ctx.Err() != nil || time.Now().After(d.deadline) {
		d.expired = true
		return
	}
	if depth == d.horizon || depth == len(d.projects) {
		d.rollout(placed, depth)
		return
	}

	p := d.projects[depth]
	tried := 0
	for _, slot := range d.strategy.snap.SortedTimeslots() {
		if tried == d.branching {
			break
		}
		if !g.instructorFree(p.ResponsibleID, slot.ID) {
			continue
		}
		for _, room := range d.strategy.snap.ClassroomIDs() {
			if !g.cellFree(room, slot.ID) {
				continue
			}
			a := domain.Assignment{
				ProjectID:     p.ID,
				ClassroomID:   room,
				TimeslotID:    slot.ID,
				InstructorIDs: []int{p.ResponsibleID},
				IsMakeup:      p.IsMakeup,
			}
			g.occupy(a)
			d.dive(g, append(placed, a), depth+1)
			g.release(a)
			tried++
			break
		}
		if d.expired {
			return
		}
	}
	if tried == 0 {
		d.dive(g, placed, depth+1)
	}
}

// rollout completes the remaining projects greedily and scores the leaf.
func (d *deepDive) rollout(placed []domain.Assignment, depth int) {
	full := domain.CloneAssignments(placed)
	rg := gridFrom(d.strategy.snap, full)
	for _, p := range d.projects[depth:] {
		room, slot, ok := rg.earliestCell([]int{p.ResponsibleID})
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
		rg.occupy(a)
		full = append(full, a)
	}
	completeJuries(d.strategy.snap, rg, full)

	score := d.strategy.EvaluateFitness(full)
	if score > d.bestScore {
		d.best, d.bestScore = full, score
	}
}
