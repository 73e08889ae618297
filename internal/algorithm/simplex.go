package algorithm

import (
	"context"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// simplexStrategy solves the LP relaxation of the 0/1 model and rounds it.
// With the instructor rows dropped the relaxation is a transportation
// problem whose optimum packs all mass into the highest-reward slots, so
// the rounding walks slots in reward order and fixes one free project per
// room, restoring the no-overlap rows greedily. The relaxation value is
// reported as the optimality bound.
type simplexStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "simplex",
		Category:    fitness.CategoryMathProg,
		Description: "LP relaxation with reward-ordered greedy rounding",
		Params:      []ParamSpec{seedSpec},
		New: func() Strategy {
			return &simplexStrategy{base: newBase("simplex", fitness.CategoryMathProg)}
		},
	})
}

func (s *simplexStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	model := newMPModel(s.snap)
	lpBound := model.relaxationBound(len(model.projects), make([]int, len(model.slots)))

	g := newGrid(s.snap)
	var placed []domain.Assignment
	achieved := 0

	// Pending projects in model order: largest responsible groups first,
	// matching where the fractional optimum concentrates its mass.
	pending := append([]domain.Project(nil), model.projects...)

	for si, slot := range model.slots {
		if ctx.Err() != nil {
			break
		}
		for _, room := range model.rooms {
			if !g.cellFree(room, slot.ID) || len(pending) == 0 {
				continue
			}
			pick := -1
			for i, p := range pending {
				if g.instructorFree(p.ResponsibleID, slot.ID) {
					pick = i
					break
				}
			}
			if pick < 0 {
				continue
			}
			a := model.assignment(pending[pick], room, slot.ID)
			g.occupy(a)
			placed = append(placed, a)
			achieved += model.rewards[si]
			pending = append(pending[:pick], pending[pick+1:]...)
		}
	}

	if len(placed) == 0 {
		return s.failure(StatusInfeasible, elapsed(), map[string]any{"lp_bound": lpBound})
	}

	completeJuries(s.snap, g, placed)
	placed, _ = solution.Reflow(s.snap, placed)
	placed, _, flagged := solution.RelocateLate(s.snap, placed)

	return s.result(placed, elapsed(), map[string]any{
		"lp_bound":     lpBound,
		"objective":    achieved,
		"gap":          lpBound - achieved,
		"late_flagged": flagged,
	})
}
