package algorithm

import (
	"fmt"
	"math/rand"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
)

// base carries the state every strategy shares: the snapshot, the bound
// parameter map, a per-run RNG, and the fitness category. Strategies embed
// it and layer their own search on top.
type base struct {
	tag      string
	category fitness.Category
	snap     *domain.Snapshot
	params   Params
	rng      *rand.Rand
}

func newBase(tag string, category fitness.Category) base {
	return base{tag: tag, category: category}
}

// Initialize validates the snapshot and seeds the per-run RNG. All
// randomness inside a strategy must flow through b.rng so identical seeds
// reproduce identical runs.
func (b *base) Initialize(snap *domain.Snapshot, params Params) error {
	if snap == nil {
		return fmt.Errorf("%s: nil snapshot", b.tag)
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("%s: %w", b.tag, err)
	}
	if params == nil {
		params = Params{}
	}
	b.snap = snap
	b.params = params
	b.rng = rand.New(rand.NewSource(params.Seed()))
	return nil
}

// EvaluateFitness scores a solution with the category's default weights.
func (b *base) EvaluateFitness(assignments []domain.Assignment) float64 {
	return fitness.EvaluateCategory(b.snap, assignments, b.category).Total
}

// result assembles the uniform Result shape around a final solution.
func (b *base) result(assignments []domain.Assignment, elapsed float64, stats map[string]any) Result {
	status := StatusCompleted
	if len(assignments) == 0 {
		status = StatusFailed
	}
	return Result{
		Assignments:      assignments,
		Fitness:          b.EvaluateFitness(assignments),
		ExecutionSeconds: elapsed,
		AlgorithmTag:     b.tag,
		Status:           status,
		Parameters:       b.params.Clone(),
		Stats:            stats,
	}
}

// failure assembles a degenerate Result.
func (b *base) failure(status string, elapsed float64, stats map[string]any) Result {
	return Result{
		ExecutionSeconds: elapsed,
		AlgorithmTag:     b.tag,
		Status:           status,
		Parameters:       b.params.Clone(),
		Stats:            stats,
	}
}
