package algorithm

import (
	"context"
	"time"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// ilpStrategy solves the 0/1 model exactly by branch and bound: depth-first
// over the project variables, pruning any node whose incumbent reward plus
// the LP relaxation of the remaining mass cannot beat the best known
// solution. Coverage dominates reward when comparing incumbents.
type ilpStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "ilp",
		Category:    fitness.CategoryMathProg,
		Description: "integer program solved by branch and bound with an LP relaxation bound",
		Params: []ParamSpec{
			seedSpec,
			timeLimitSpec,
		},
		New: func() Strategy { return &ilpStrategy{base: newBase("ilp", fitness.CategoryMathProg)} },
	})
}

type ilpSearch struct {
	model    *mpModel
	deadline time.Time
	ctx      context.Context

	bestPlaced int
	bestReward int
	best       []domain.Assignment
	nodes      int
	pruned     int
	expired    bool
}

func (s *ilpStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	limit := s.params.Float("time_limit", 5.0)

	search := &ilpSearch{
		model:      newMPModel(s.snap),
		deadline:   time.Now().Add(time.Duration(limit * float64(time.Second))),
		ctx:        ctx,
		bestPlaced: -1,
	}
	search.branch(newGrid(s.snap), nil, 0, 0, make([]int, len(search.model.slots)))

	if search.best == nil {
		return s.failure(StatusInfeasible, elapsed(), map[string]any{
			"nodes":   search.nodes,
			"expired": search.expired,
		})
	}

	assignments := domain.CloneAssignments(search.best)
	completeJuries(s.snap, gridFrom(s.snap, assignments), assignments)
	assignments, _, flagged := solution.RelocateLate(s.snap, assignments)

	return s.result(assignments, elapsed(), map[string]any{
		"nodes":        search.nodes,
		"pruned":       search.pruned,
		"objective":    search.bestReward,
		"expired":      search.expired,
		"late_flagged": flagged,
	})
}

func (c *ilpSearch) branch(g *grid, placed []domain.Assignment, depth, reward int, usedPerSlot []int) {
	c.nodes++
	if len(placed) > c.bestPlaced || (len(placed) == c.bestPlaced && reward > c.bestReward) {
		c.bestPlaced = len(placed)
		c.bestReward = reward
		c.best = domain.CloneAssignments(placed)
	}
	if depth == len(c.model.projects) {
		return
	}
	if c.expired || c.ctx.Err() != nil || time.Now().After(c.deadline) {
		c.expired = true
		return
	}

	remaining := len(c.model.projects) - depth
	// Same coverage is only reachable by placing everything left; prune
	// when even then the relaxation cannot improve the reward.
	if len(placed)+remaining < c.bestPlaced ||
		(len(placed)+remaining == c.bestPlaced && reward+c.model.relaxationBound(remaining, usedPerSlot) <= c.bestReward) {
		c.pruned++
		return
	}

	p := c.model.projects[depth]
	for si, slot := range c.model.slots {
		if !g.instructorFree(p.ResponsibleID, slot.ID) {
			continue
		}
		for _, room := range c.model.rooms {
			if !g.cellFree(room, slot.ID) {
				continue
			}
			a := c.model.assignment(p, room, slot.ID)
			g.occupy(a)
			usedPerSlot[si]++
			c.branch(g, append(placed, a), depth+1, reward+c.model.rewards[si], usedPerSlot)
			usedPerSlot[si]--
			g.release(a)
			if c.expired {
				return
			}
			break // rooms are interchangeable at a fixed slot
		}
	}

	// x[p][*] = 0 branch.
	c.branch(g, placed, depth+1, reward, usedPerSlot)
}
