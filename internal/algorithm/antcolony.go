package algorithm

import (
	"context"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// antColonyStrategy lays pheromone on project orderings: trail strength on
// (position, project) pairs biases the order later ants place projects in,
// with slot desirability (the reward table) as the heuristic visibility.
type antColonyStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "ant-colony",
		Category:    fitness.CategorySwarm,
		Description: "ant colony optimization over project placement order",
		Params: []ParamSpec{
			seedSpec,
			{Name: "ants", Type: ParamInt, Default: 20, Description: "ants per iteration"},
			{Name: "iterations", Type: ParamInt, Default: 60, Description: "colony iterations"},
			{Name: "evaporation", Type: ParamFloat, Default: 0.1, Description: "pheromone evaporation rate"},
			{Name: "deposit", Type: ParamFloat, Default: 1.0, Description: "pheromone laid by the iteration best"},
		},
		New: func() Strategy { return &antColonyStrategy{base: newBase("ant-colony", fitness.CategorySwarm)} },
	})
}

func (s *antColonyStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	ants := s.params.Int("ants", 20)
	iterations := s.params.Int("iterations", 60)
	evaporation := s.params.Float("evaporation", 0.1)
	deposit := s.params.Float("deposit", 1.0)

	n := len(s.snap.Projects())
	pheromone := make([][]float64, n) // position -> project -> trail
	for i := range pheromone {
		pheromone[i] = make([]float64, n)
		for j := range pheromone[i] {
			pheromone[i][j] = 1.0
		}
	}

	var bestDecoded []domain.Assignment
	bestScore := -1.0

	iter := 0
	for ; iter < iterations; iter++ {
		if ctx.Err() != nil {
			break
		}

		var iterBestPerm []int
		iterBestScore := -1.0
		for a := 0; a < ants; a++ {
			perm := s.walk(pheromone)
			decoded := decodePermutation(s.snap, perm)
			score := s.EvaluateFitness(decoded)
			if score > iterBestScore {
				iterBestPerm, iterBestScore = perm, score
			}
			if score > bestScore {
				bestDecoded, bestScore = decoded, score
			}
		}

		for i := range pheromone {
			for j := range pheromone[i] {
				pheromone[i][j] *= 1 - evaporation
			}
		}
		for pos, project := range iterBestPerm {
			pheromone[pos][project] += deposit * iterBestScore / 100
		}
	}

	if bestDecoded == nil {
		return s.failure(StatusFailed, elapsed(), nil)
	}
	assignments, _, flagged := solution.RelocateLate(s.snap, bestDecoded)
	return s.result(assignments, elapsed(), map[string]any{
		"iterations":   iter,
		"late_flagged": flagged,
	})
}

// walk builds one ordering by roulette selection over remaining projects,
// weighted by the pheromone at each position.
func (s *antColonyStrategy) walk(pheromone [][]float64) []int {
	n := len(pheromone)
	perm := make([]int, 0, n)
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	for pos := 0; pos < n; pos++ {
		total := 0.0
		for _, project := range remaining {
			total += pheromone[pos][project]
		}
		r := s.rng.Float64() * total
		pick := len(remaining) - 1
		for i, project := range remaining {
			r -= pheromone[pos][project]
			if r <= 0 {
				pick = i
				break
			}
		}
		perm = append(perm, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return perm
}
