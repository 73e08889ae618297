package algorithm

import (
	"context"

	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// greedyStrategy runs the shared construction heuristic once and repairs
// the obvious defects: duplicates and late placements.
type greedyStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "greedy",
		Category:    fitness.CategoryLocalSearch,
		Description: "single-pass consecutive grouping with strategic pairing",
		Params:      []ParamSpec{seedSpec},
		New:         func() Strategy { return &greedyStrategy{base: newBase("greedy", fitness.CategoryLocalSearch)} },
	})
}

func (s *greedyStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	if ctx.Err() != nil {
		return s.failure(StatusFailed, elapsed(), nil)
	}

	assignments := constructConsecutive(s.snap, s.rng)
	assignments, dropped := solution.Dedup(s.snap, assignments)
	assignments, moved, flagged := solution.RelocateLate(s.snap, assignments)

	return s.result(assignments, elapsed(), map[string]any{
		"deduplicated":   dropped,
		"late_relocated": moved,
		"late_flagged":   flagged,
	})
}
