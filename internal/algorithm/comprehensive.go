package algorithm

import (
	"context"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// comprehensiveStrategy is the fallback workhorse: multiple randomized
// constructions, full repair after each, keep the best. It must stay
// robust on degenerate inputs because every other strategy's failure
// lands here.
type comprehensiveStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "comprehensive",
		Category:    fitness.CategoryLocalSearch,
		Description: "multi-start construction with full repair; orchestrator fallback",
		Params: []ParamSpec{
			seedSpec,
			{Name: "restarts", Type: ParamInt, Default: 12, Description: "randomized construction attempts"},
			{Name: "polish_iterations", Type: ParamInt, Default: 300, Description: "hill-climb budget on the best candidate"},
		},
		New: func() Strategy {
			return &comprehensiveStrategy{base: newBase("comprehensive", fitness.CategoryLocalSearch)}
		},
	})
}

func (s *comprehensiveStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	restarts := s.params.Int("restarts", 12)
	if restarts < 1 {
		restarts = 1
	}

	var best []domain.Assignment
	bestScore := -1.0
	for i := 0; i < restarts; i++ {
		if ctx.Err() != nil {
			break
		}
		candidate := s.buildAndRepair()
		if score := s.EvaluateFitness(candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if best == nil {
		return s.failure(StatusFailed, elapsed(), map[string]any{"restarts": 0})
	}

	best, improved := hillClimb(ctx, s.snap, s.rng, best, s.EvaluateFitness, s.params.Int("polish_iterations", 300))
	return s.result(best, elapsed(), map[string]any{
		"restarts":       restarts,
		"polish_accepts": improved,
	})
}

func (s *comprehensiveStrategy) buildAndRepair() []domain.Assignment {
	assignments := constructConsecutive(s.snap, s.rng)
	assignments, _ = solution.Dedup(s.snap, assignments)
	assignments, _, _ = solution.RelocateLate(s.snap, assignments)
	assignments, _ = solution.Compact(s.snap, assignments)
	assignments, _ = solution.Reflow(s.snap, assignments)
	return assignments
}
