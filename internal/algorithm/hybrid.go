package algorithm

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// hybridStrategy seeds the multi-objective GA with constraint-search
// solutions: a short backtracking run produces a feasible schedule, its
// placement order becomes a permutation, and that permutation plus mutated
// copies join an otherwise random initial population. The GA then explores
// around a point that already satisfies the hard constraints instead of
// starting from noise.
type hybridStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "hybrid-cp-nsga",
		Category:    fitness.CategoryEvolutionary,
		Description: "constraint-search seed evolved by non-dominated sorting GA",
		Params: []ParamSpec{
			seedSpec,
			{Name: "seed_time", Type: ParamFloat, Default: 1.0, Description: "seconds granted to the constraint seed search"},
			{Name: "population_size", Type: ParamInt, Default: 40, Description: "individuals per generation"},
			{Name: "generations", Type: ParamInt, Default: 40, Description: "generations to evolve"},
			{Name: "crossover_rate", Type: ParamFloat, Default: 0.9, Description: "probability of applying OX"},
			{Name: "mutation_rate", Type: ParamFloat, Default: 0.25, Description: "probability of a swap mutation"},
		},
		New: func() Strategy {
			return &hybridStrategy{base: newBase("hybrid-cp-nsga", fitness.CategoryEvolutionary)}
		},
	})
}

func (s *hybridStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	seedTime := s.params.Float("seed_time", 1.0)
	popSize := s.params.Int("population_size", 40)
	generations := s.params.Int("generations", 40)
	crossRate := s.params.Float("crossover_rate", 0.9)
	mutRate := s.params.Float("mutation_rate", 0.25)
	if popSize < 4 {
		popSize = 4
	}

	seedPerm, seeded := s.constraintSeed(ctx, seedTime)

	pop := make([]*nsgaIndividual, 0, popSize)
	if seeded {
		pop = append(pop, nsgaSpawn(s.snap, seedPerm))
		// A quarter of the population starts as jittered seed copies.
		for len(pop) < popSize/4 {
			perm := append([]int(nil), seedPerm...)
			swapMutation(s.rng, perm, 1.0)
			swapMutation(s.rng, perm, 0.5)
			pop = append(pop, nsgaSpawn(s.snap, perm))
		}
	}
	for len(pop) < popSize {
		pop = append(pop, nsgaSpawn(s.snap, randomPermutation(s.snap, s.rng)))
	}

	pop, gen := nsgaEvolve(ctx, s.snap, s.rng, pop, popSize, generations, crossRate, mutRate, 2)

	front := nonDominatedSort(pop)[0]
	best := front[0]
	bestScore := s.EvaluateFitness(best.decoded)
	for _, ind := range front[1:] {
		if score := s.EvaluateFitness(ind.decoded); score > bestScore {
			best, bestScore = ind, score
		}
	}

	assignments, _, flagged := solution.RelocateLate(s.snap, best.decoded)
	return s.result(assignments, elapsed(), map[string]any{
		"seeded":       seeded,
		"generations":  gen,
		"front_size":   len(front),
		"late_flagged": flagged,
	})
}

// constraintSeed runs the bounded backtracking search and converts its
// best solution into a permutation: project indices ordered by placement
// time, with any unplaced projects appended in shuffled order.
func (s *hybridStrategy) constraintSeed(ctx context.Context, seconds float64) ([]int, bool) {
	search := &cpSearch{
		snap:     s.snap,
		deadline: time.Now().Add(time.Duration(seconds * float64(time.Second))),
		ctx:      ctx,
		projects: orderByGroupSize(s.snap),
		slots:    s.snap.SortedTimeslots(),
		rooms:    s.snap.ClassroomIDs(),
	}
	search.solve(newGrid(s.snap), nil, 0)
	if search.best == nil {
		return nil, false
	}

	indexOf := make(map[int]int, len(s.snap.Projects()))
	for i, p := range s.snap.Projects() {
		indexOf[p.ID] = i
	}

	placed := make([]int, len(search.best))
	for i := range placed {
		placed[i] = i
	}
	sort.SliceStable(placed, func(i, j int) bool {
		ai, aj := search.best[placed[i]], search.best[placed[j]]
		si, sj := s.snap.SlotIndex(ai.TimeslotID), s.snap.SlotIndex(aj.TimeslotID)
		if si != sj {
			return si < sj
		}
		return ai.ClassroomID < aj.ClassroomID
	})

	perm := make([]int, 0, len(indexOf))
	used := make(map[int]bool, len(placed))
	for _, ai := range placed {
		idx := indexOf[search.best[ai].ProjectID]
		perm = append(perm, idx)
		used[idx] = true
	}

	var rest []int
	for i := range s.snap.Projects() {
		if !used[i] {
			rest = append(rest, i)
		}
	}
	s.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	return append(perm, rest...), true
}
