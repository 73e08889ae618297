package algorithm

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// cpSatStrategy states the placement problem as a constraint model —
// project variables over (room, slot) domains, all-different on cells,
// no-overlap per responsible instructor — and solves it with backtracking
// search plus forward checking under a time limit. The best partial
// assignment found is returned when the limit expires before a full one.
type cpSatStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "cp-sat",
		Category:    fitness.CategoryConstraint,
		Description: "constraint model with backtracking search and forward checking",
		Params: []ParamSpec{
			seedSpec,
			timeLimitSpec,
		},
		New: func() Strategy { return &cpSatStrategy{base: newBase("cp-sat", fitness.CategoryConstraint)} },
	})
}

type cpSearch struct {
	snap     *domain.Snapshot
	deadline time.Time
	ctx      context.Context

	projects []domain.Project
	slots    []domain.Timeslot
	rooms    []int

	best      []domain.Assignment
	bestCount int
	expired   bool
}

func (s *cpSatStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	limit := s.params.Float("time_limit", 5.0)

	search := &cpSearch{
		snap:     s.snap,
		deadline: time.Now().Add(time.Duration(limit * float64(time.Second))),
		ctx:      ctx,
		projects: orderByGroupSize(s.snap),
		slots:    s.snap.SortedTimeslots(),
		rooms:    s.snap.ClassroomIDs(),
	}
	search.solve(newGrid(s.snap), nil, 0)

	if search.best == nil {
		return s.failure(StatusInfeasible, elapsed(), map[string]any{"expired": search.expired})
	}

	assignments := domain.CloneAssignments(search.best)
	g := gridFrom(s.snap, assignments)
	completeJuries(s.snap, g, assignments)
	assignments, _, flagged := solution.RelocateLate(s.snap, assignments)

	return s.result(assignments, elapsed(), map[string]any{
		"expired":      search.expired,
		"placed":       search.bestCount,
		"late_flagged": flagged,
	})
}

// orderByGroupSize applies the fail-first principle: instructors with the
// most projects are the tightest variables, so their projects go first.
func orderByGroupSize(snap *domain.Snapshot) []domain.Project {
	byResp := snap.ProjectsByResponsible()
	projects := append([]domain.Project(nil), snap.Projects()...)
	sort.SliceStable(projects, func(i, j int) bool {
		gi, gj := len(byResp[projects[i].ResponsibleID]), len(byResp[projects[j].ResponsibleID])
		if gi != gj {
			return gi > gj
		}
		return projects[i].ID < projects[j].ID
	})
	return projects
}

// solve returns true when a complete assignment was found.
func (c *cpSearch) solve(g *grid, placed []domain.Assignment, depth int) bool {
	if len(placed) > c.bestCount {
		c.best = domain.CloneAssignments(placed)
		c.bestCount = len(placed)
	}
	if depth == len(c.projects) {
		return true
	}
	if c.ctx.Err() != nil || time.Now().After(c.deadline) {
		c.expired = true
		return false
	}

	p := c.projects[depth]
	// Value ordering: earliest slots first keeps the reward objective
	// aligned with the search order.
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
			if c.solve(g, append(placed, a), depth+1) {
				return true
			}
			g.release(a)
			if c.expired {
				return false
			}
			break // only the first free room per slot; rooms are symmetric
		}
	}

	// Skipping this project keeps the search complete for partial
	// coverage when the grid is smaller than the project set.
	return c.solve(g, placed, depth+1)
}
