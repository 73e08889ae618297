package algorithm

import (
	"context"
	"time"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// branchBoundStrategy explores placements depth-first, bounding each node
// with the crude optimistic estimate that every remaining project earns
// the maximum slot reward. The bound is weaker than the LP relaxation the
// integer-programming strategy uses, but it is O(1) per node, so the
// search trades pruning power for raw node throughput.
type branchBoundStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "branch-bound",
		Category:    fitness.CategorySearch,
		Description: "depth-first branch and bound on the slot reward objective",
		Params: []ParamSpec{
			seedSpec,
			timeLimitSpec,
		},
		New: func() Strategy {
			return &branchBoundStrategy{base: newBase("branch-bound", fitness.CategorySearch)}
		},
	})
}

type bbSearch struct {
	snap     *domain.Snapshot
	deadline time.Time
	ctx      context.Context

	projects []domain.Project
	slots    []domain.Timeslot
	rooms    []int

	bestPlaced int
	bestReward int
	best       []domain.Assignment
	nodes      int
	expired    bool
}

func (s *branchBoundStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	limit := s.params.Float("time_limit", 5.0)

	search := &bbSearch{
		snap:       s.snap,
		deadline:   time.Now().Add(time.Duration(limit * float64(time.Second))),
		ctx:        ctx,
		projects:   orderByGroupSize(s.snap),
		slots:      s.snap.SortedTimeslots(),
		rooms:      s.snap.ClassroomIDs(),
		bestPlaced: -1,
	}
	search.descend(newGrid(s.snap), nil, 0, 0)

	if search.best == nil {
		return s.failure(StatusInfeasible, elapsed(), map[string]any{"nodes": search.nodes})
	}

	assignments := domain.CloneAssignments(search.best)
	completeJuries(s.snap, gridFrom(s.snap, assignments), assignments)
	assignments, _, flagged := solution.RelocateLate(s.snap, assignments)

	return s.result(assignments, elapsed(), map[string]any{
		"nodes":        search.nodes,
		"objective":    search.bestReward,
		"expired":      search.expired,
		"late_flagged": flagged,
	})
}

func (c *bbSearch) descend(g *grid, placed []domain.Assignment, depth, reward int) {
	c.nodes++
	if len(placed) > c.bestPlaced || (len(placed) == c.bestPlaced && reward > c.bestReward) {
		c.bestPlaced = len(placed)
		c.bestReward = reward
		c.best = domain.CloneAssignments(placed)
	}
	if depth == len(c.projects) {
		return
	}
	if c.expired || c.ctx.Err() != nil || time.Now().After(c.deadline) {
		c.expired = true
		return
	}

	remaining := len(c.projects) - depth
	if len(placed)+remaining < c.bestPlaced {
		return
	}
	if len(placed)+remaining == c.bestPlaced && reward+remaining*domain.MaxSlotReward <= c.bestReward {
		return
	}

	p := c.projects[depth]
	for _, slot := range c.slots {
		if !g.instructorFree(p.ResponsibleID, slot.ID) {
			continue
		}
		for _, room := range c.rooms {
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
			c.descend(g, append(placed, a), depth+1, reward+slot.Reward())
			g.release(a)
			if c.expired {
				return
			}
			break
		}
	}
	c.descend(g, placed, depth+1, reward)
}
