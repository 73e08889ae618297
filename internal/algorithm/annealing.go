package algorithm

import (
	"context"
	"math"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// annealingStrategy perturbs the constructed solution under a geometric
// cooling schedule with Metropolis acceptance. Cost is the negated fitness
// so a lower cost is a better schedule.
type annealingStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "simulated-annealing",
		Category:    fitness.CategoryLocalSearch,
		Description: "Metropolis-accepted perturbation under geometric cooling",
		Params: []ParamSpec{
			seedSpec,
			{Name: "initial_temp", Type: ParamFloat, Default: 40.0, Description: "starting temperature"},
			{Name: "cooling_rate", Type: ParamFloat, Default: 0.995, Description: "geometric cooling factor per iteration"},
			{Name: "iterations", Type: ParamInt, Default: 4000, Description: "annealing steps"},
		},
		New: func() Strategy {
			return &annealingStrategy{base: newBase("simulated-annealing", fitness.CategoryLocalSearch)}
		},
	})
}

func (s *annealingStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()

	current := constructConsecutive(s.snap, s.rng)
	current, _ = solution.Dedup(s.snap, current)
	currentCost := -s.EvaluateFitness(current)

	best := domain.CloneAssignments(current)
	bestCost := currentCost

	temp := s.params.Float("initial_temp", 40.0)
	cooling := s.params.Float("cooling_rate", 0.995)
	iterations := s.params.Int("iterations", 4000)

	accepted, improved := 0, 0
	for i := 0; i < iterations && temp > 1e-6; i++ {
		if ctx.Err() != nil {
			break
		}
		candidate, ok := perturb(s.snap, s.rng, current)
		if !ok {
			temp *= cooling
			continue
		}
		cost := -s.EvaluateFitness(candidate)
		delta := cost - currentCost

		if delta < 0 || s.rng.Float64() < math.Exp(-delta/temp) {
			current, currentCost = candidate, cost
			accepted++
			if currentCost < bestCost {
				best = domain.CloneAssignments(current)
				bestCost = currentCost
				improved++
			}
		}
		temp *= cooling
	}

	best, _, flagged := solution.RelocateLate(s.snap, best)
	return s.result(best, elapsed(), map[string]any{
		"accepted_moves": accepted,
		"improvements":   improved,
		"final_temp":     temp,
		"late_flagged":   flagged,
	})
}
