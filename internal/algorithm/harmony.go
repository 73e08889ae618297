package algorithm

import (
	"context"

	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// harmonyStrategy keeps a memory of good orderings. Each improvisation
// picks every position from memory with probability HMCR, pitch-adjusts
// it with probability PAR (a local swap), and otherwise draws randomly.
// The worst memory slot is replaced when the improvisation beats it.
type harmonyStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "harmony",
		Category:    fitness.CategorySwarm,
		Description: "harmony search over project orderings",
		Params: []ParamSpec{
			seedSpec,
			{Name: "memory_size", Type: ParamInt, Default: 20, Description: "harmony memory slots"},
			{Name: "iterations", Type: ParamInt, Default: 1500, Description: "improvisations"},
			{Name: "hmcr", Type: ParamFloat, Default: 0.9, Description: "memory consideration rate"},
			{Name: "par", Type: ParamFloat, Default: 0.3, Description: "pitch adjustment rate"},
		},
		New: func() Strategy { return &harmonyStrategy{base: newBase("harmony", fitness.CategorySwarm)} },
	})
}

func (s *harmonyStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	memSize := s.params.Int("memory_size", 20)
	iterations := s.params.Int("iterations", 1500)
	hmcr := s.params.Float("hmcr", 0.9)
	par := s.params.Float("par", 0.3)
	if memSize < 2 {
		memSize = 2
	}

	memory := make([]individual, memSize)
	for i := range memory {
		perm := randomPermutation(s.snap, s.rng)
		decoded := decodePermutation(s.snap, perm)
		memory[i] = individual{perm: perm, decoded: decoded, score: s.EvaluateFitness(decoded)}
	}

	improvised := 0
	for i := 0; i < iterations; i++ {
		if ctx.Err() != nil {
			break
		}

		var perm []int
		if s.rng.Float64() < hmcr {
			perm = append([]int(nil), memory[s.rng.Intn(memSize)].perm...)
			if s.rng.Float64() < par {
				swapMutation(s.rng, perm, 1.0)
			}
		} else {
			perm = randomPermutation(s.snap, s.rng)
		}

		decoded := decodePermutation(s.snap, perm)
		score := s.EvaluateFitness(decoded)

		worst := 0
		for j := range memory {
			if memory[j].score < memory[worst].score {
				worst = j
			}
		}
		if score > memory[worst].score {
			memory[worst] = individual{perm: perm, decoded: decoded, score: score}
			improvised++
		}
	}

	best := memory[0]
	for _, h := range memory[1:] {
		if h.score > best.score {
			best = h
		}
	}
	assignments, _, flagged := solution.RelocateLate(s.snap, best.decoded)
	return s.result(assignments, elapsed(), map[string]any{
		"memory_updates": improvised,
		"late_flagged":   flagged,
	})
}
