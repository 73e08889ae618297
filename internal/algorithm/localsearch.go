package algorithm

import (
	"context"

	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// greedyLocalSearch seeds with the construction heuristic and then climbs
// the relocate/swap neighborhood.
type greedyLocalSearch struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "greedy-local-search",
		Category:    fitness.CategoryLocalSearch,
		Description: "greedy construction followed by hill climbing",
		Params: []ParamSpec{
			seedSpec,
			{Name: "iterations", Type: ParamInt, Default: 2000, Description: "neighborhood moves to try"},
		},
		New: func() Strategy {
			return &greedyLocalSearch{base: newBase("greedy-local-search", fitness.CategoryLocalSearch)}
		},
	})
}

func (s *greedyLocalSearch) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	assignments := constructConsecutive(s.snap, s.rng)
	assignments, _ = solution.Dedup(s.snap, assignments)

	assignments, improved := hillClimb(ctx, s.snap, s.rng, assignments, s.EvaluateFitness, s.params.Int("iterations", 2000))
	assignments, _, flagged := solution.RelocateLate(s.snap, assignments)

	return s.result(assignments, elapsed(), map[string]any{
		"accepted_moves": improved,
		"late_flagged":   flagged,
	})
}
