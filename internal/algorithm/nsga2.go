package algorithm

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// nsga2Strategy evolves a Pareto front over four minimized objectives:
// uncovered projects, per-room gaps, late placements, and load deviation.
// The scalar fitness score is only used to pick the returned solution from
// the final first front — selection pressure comes from dominance and
// crowding, which stay smooth where the scalar coverage axis does not.
type nsga2Strategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "nsga-ii",
		Category:    fitness.CategoryEvolutionary,
		Description: "non-dominated sorting GA over coverage/gap/late/balance objectives",
		Params: []ParamSpec{
			seedSpec,
			{Name: "population_size", Type: ParamInt, Default: 40, Description: "individuals per generation"},
			{Name: "generations", Type: ParamInt, Default: 50, Description: "generations to evolve"},
			{Name: "crossover_rate", Type: ParamFloat, Default: 0.9, Description: "probability of applying OX"},
			{Name: "mutation_rate", Type: ParamFloat, Default: 0.25, Description: "probability of a swap mutation"},
			{Name: "tournament_size", Type: ParamInt, Default: 2, Description: "tournament participants"},
		},
		New: func() Strategy { return &nsga2Strategy{base: newBase("nsga-ii", fitness.CategoryEvolutionary)} },
	})
}

type nsgaIndividual struct {
	perm      []int
	decoded   []domain.Assignment
	objective []float64
	rank      int
	distance  float64
}

func (s *nsga2Strategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	popSize := s.params.Int("population_size", 40)
	generations := s.params.Int("generations", 50)
	crossRate := s.params.Float("crossover_rate", 0.9)
	mutRate := s.params.Float("mutation_rate", 0.25)
	tourSize := s.params.Int("tournament_size", 2)
	if popSize < 4 {
		popSize = 4
	}
	if tourSize < 2 {
		tourSize = 2
	}

	pop := make([]*nsgaIndividual, popSize)
	for i := range pop {
		pop[i] = nsgaSpawn(s.snap, randomPermutation(s.snap, s.rng))
	}

	pop, gen := nsgaEvolve(ctx, s.snap, s.rng, pop, popSize, generations, crossRate, mutRate, tourSize)

	best := s.pickFromFront(nonDominatedSort(pop)[0])
	assignments, _, flagged := solution.RelocateLate(s.snap, best.decoded)
	return s.result(assignments, elapsed(), map[string]any{
		"generations":  gen,
		"front_size":   len(nonDominatedSort(pop)[0]),
		"late_flagged": flagged,
	})
}

// nsgaEvolve runs the generational loop over an already-seeded population
// and returns the final population with the generations actually completed.
func nsgaEvolve(ctx context.Context, snap *domain.Snapshot, rng *rand.Rand, pop []*nsgaIndividual, popSize, generations int, crossRate, mutRate float64, tourSize int) ([]*nsgaIndividual, int) {
	gen := 0
	for ; gen < generations; gen++ {
		if ctx.Err() != nil {
			break
		}
		offspring := make([]*nsgaIndividual, 0, popSize)
		for len(offspring) < popSize {
			p1 := nsgaTournament(rng, pop, tourSize)
			p2 := nsgaTournament(rng, pop, tourSize)
			var childPerm []int
			if rng.Float64() < crossRate {
				childPerm = orderCrossover(rng, p1.perm, p2.perm)
			} else {
				childPerm = append([]int(nil), p1.perm...)
			}
			swapMutation(rng, childPerm, mutRate)
			offspring = append(offspring, nsgaSpawn(snap, childPerm))
		}

		combined := append(append([]*nsgaIndividual(nil), pop...), offspring...)
		fronts := nonDominatedSort(combined)

		pop = make([]*nsgaIndividual, 0, popSize)
		for _, front := range fronts {
			crowdingDistance(front)
			if len(pop)+len(front) <= popSize {
				pop = append(pop, front...)
				continue
			}
			sort.Slice(front, func(i, j int) bool { return front[i].distance > front[j].distance })
			pop = append(pop, front[:popSize-len(pop)]...)
			break
		}
	}
	return pop, gen
}

func nsgaSpawn(snap *domain.Snapshot, perm []int) *nsgaIndividual {
	decoded := decodePermutation(snap, perm)
	return &nsgaIndividual{
		perm:      perm,
		decoded:   decoded,
		objective: nsgaObjectives(snap, decoded),
	}
}

// nsgaObjectives returns the minimized objective vector.
func nsgaObjectives(snap *domain.Snapshot, assignments []domain.Assignment) []float64 {
	uncovered := float64(len(snap.Projects()) - len(assignments))
	gaps := float64(solution.TotalGaps(snap, assignments))
	late := float64(solution.CountLate(snap, assignments))

	loads := make(map[int]int)
	total := 0
	for _, a := range assignments {
		for _, ins := range a.InstructorIDs {
			loads[ins]++
			total++
		}
	}
	mean := float64(total) / float64(len(snap.Instructors()))
	deviation := 0.0
	for _, ins := range snap.Instructors() {
		deviation += math.Abs(float64(loads[ins.ID]) - mean)
	}
	return []float64{uncovered, gaps, late, deviation}
}

func nsgaTournament(rng *rand.Rand, pop []*nsgaIndividual, size int) *nsgaIndividual {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < size; i++ {
		c := pop[rng.Intn(len(pop))]
		if c.rank < best.rank || (c.rank == best.rank && c.distance > best.distance) {
			best = c
		}
	}
	return best
}

// pickFromFront resolves the returned solution: the first-front member
// with the best scalar fitness.
func (s *nsga2Strategy) pickFromFront(front []*nsgaIndividual) *nsgaIndividual {
	best := front[0]
	bestScore := s.EvaluateFitness(best.decoded)
	for _, ind := range front[1:] {
		if score := s.EvaluateFitness(ind.decoded); score > bestScore {
			best, bestScore = ind, score
		}
	}
	return best
}

func dominates(a, b *nsgaIndividual) bool {
	better := false
	for i := range a.objective {
		if a.objective[i] > b.objective[i] {
			return false
		}
		if a.objective[i] < b.objective[i] {
			better = true
		}
	}
	return better
}

func nonDominatedSort(pop []*nsgaIndividual) [][]*nsgaIndividual {
	dominated := make(map[int][]int, len(pop))
	domCount := make([]int, len(pop))
	for i := range pop {
		for j := range pop {
			if i == j {
				continue
			}
			if dominates(pop[i], pop[j]) {
				dominated[i] = append(dominated[i], j)
			} else if dominates(pop[j], pop[i]) {
				domCount[i]++
			}
		}
	}

	var fronts [][]*nsgaIndividual
	var current []int
	for i := range pop {
		if domCount[i] == 0 {
			pop[i].rank = 0
			current = append(current, i)
		}
	}
	rank := 0
	for len(current) > 0 {
		front := make([]*nsgaIndividual, len(current))
		for i, idx := range current {
			front[i] = pop[idx]
		}
		fronts = append(fronts, front)

		var next []int
		for _, idx := range current {
			for _, d := range dominated[idx] {
				domCount[d]--
				if domCount[d] == 0 {
					pop[d].rank = rank + 1
					next = append(next, d)
				}
			}
		}
		rank++
		current = next
	}
	return fronts
}

func crowdingDistance(front []*nsgaIndividual) {
	if len(front) <= 2 {
		for _, ind := range front {
			ind.distance = math.Inf(1)
		}
		return
	}
	for _, ind := range front {
		ind.distance = 0
	}
	objectives := len(front[0].objective)
	for m := 0; m < objectives; m++ {
		sort.Slice(front, func(i, j int) bool { return front[i].objective[m] < front[j].objective[m] })
		front[0].distance = math.Inf(1)
		front[len(front)-1].distance = math.Inf(1)
		span := front[len(front)-1].objective[m] - front[0].objective[m]
		if span == 0 {
			continue
		}
		for i := 1; i < len(front)-1; i++ {
			front[i].distance += (front[i+1].objective[m] - front[i-1].objective[m]) / span
		}
	}
}
