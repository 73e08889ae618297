package algorithm

import (
	"context"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/solution"
)

// The swarm strategies share one discrete adaptation of their canonical
// update rules: an agent's position is a project ordering, moving toward a
// guide means adopting a window of the guide's ordering (order crossover),
// and exploration is positional swapping. Variants differ in how the
// adoption and exploration rates evolve, how many guides lead the swarm,
// whether agents are also attracted to brighter peers, and whether the
// worst agents are abandoned and respawned.
type swarmConfig struct {
	agents     int
	iterations int

	// adoption toward the guide, linearly interpolated over the run
	adoptStart, adoptEnd float64
	// exploration (swap mutation), linearly interpolated over the run
	exploreStart, exploreEnd float64

	// number of leading guides; agents pick one uniformly (grey wolf
	// hunts behind three leaders, the rest follow a single best)
	guides int
	// probability of moving toward a random better peer instead of a
	// guide (firefly attraction, dragonfly cohesion)
	peerAttraction float64
	// fraction of the worst agents replaced with fresh random agents
	// each iteration (cuckoo nest abandonment, bee scouts)
	abandonRate float64
	// track and occasionally return to per-agent personal bests (PSO)
	personalBest bool
}

type swarmAgent struct {
	perm    []int
	decoded []domain.Assignment
	score   float64

	bestPerm  []int
	bestScore float64
}

type swarmStrategy struct {
	base
	cfg func(p Params) swarmConfig
}

func (s *swarmStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	cfg := s.cfg(s.params)
	if cfg.agents < 3 {
		cfg.agents = 3
	}
	if cfg.guides < 1 {
		cfg.guides = 1
	}

	agents := make([]*swarmAgent, cfg.agents)
	for i := range agents {
		agents[i] = s.spawnAgent(randomPermutation(s.snap, s.rng))
	}

	globalBest := agents[0]
	for _, a := range agents[1:] {
		if a.score > globalBest.score {
			globalBest = a
		}
	}
	bestDecoded := globalBest.decoded
	bestScore := globalBest.score

	iter := 0
	for ; iter < cfg.iterations; iter++ {
		if ctx.Err() != nil {
			break
		}
		t := float64(iter) / float64(max(cfg.iterations-1, 1))
		adopt := cfg.adoptStart + (cfg.adoptEnd-cfg.adoptStart)*t
		explore := cfg.exploreStart + (cfg.exploreEnd-cfg.exploreStart)*t

		leaders := s.topAgents(agents, cfg.guides)

		for _, agent := range agents {
			guide := leaders[s.rng.Intn(len(leaders))].perm
			if cfg.peerAttraction > 0 && s.rng.Float64() < cfg.peerAttraction {
				if peer := s.brighterPeer(agents, agent); peer != nil {
					guide = peer.perm
				}
			}
			if cfg.personalBest && agent.bestPerm != nil && s.rng.Float64() < 0.3 {
				guide = agent.bestPerm
			}

			next := append([]int(nil), agent.perm...)
			if s.rng.Float64() < adopt {
				next = orderCrossover(s.rng, guide, agent.perm)
			}
			swapMutation(s.rng, next, explore)

			candidate := s.spawnAgent(next)
			if candidate.score >= agent.score {
				agent.perm, agent.decoded, agent.score = candidate.perm, candidate.decoded, candidate.score
			}
			if cfg.personalBest && agent.score > agent.bestScore {
				agent.bestPerm = append([]int(nil), agent.perm...)
				agent.bestScore = agent.score
			}
			if agent.score > bestScore {
				bestDecoded = agent.decoded
				bestScore = agent.score
			}
		}

		if cfg.abandonRate > 0 {
			s.abandonWorst(agents, cfg.abandonRate)
		}
	}

	assignments, _, flagged := solution.RelocateLate(s.snap, bestDecoded)
	return s.result(assignments, elapsed(), map[string]any{
		"iterations":   iter,
		"agents":       cfg.agents,
		"late_flagged": flagged,
	})
}

func (s *swarmStrategy) spawnAgent(perm []int) *swarmAgent {
	decoded := decodePermutation(s.snap, perm)
	score := s.EvaluateFitness(decoded)
	return &swarmAgent{
		perm:      perm,
		decoded:   decoded,
		score:     score,
		bestPerm:  append([]int(nil), perm...),
		bestScore: score,
	}
}

func (s *swarmStrategy) topAgents(agents []*swarmAgent, n int) []*swarmAgent {
	if n > len(agents) {
		n = len(agents)
	}
	top := make([]*swarmAgent, 0, n)
	taken := make(map[int]bool, n)
	for len(top) < n {
		bestIdx := -1
		for i, a := range agents {
			if taken[i] {
				continue
			}
			if bestIdx < 0 || a.score > agents[bestIdx].score {
				bestIdx = i
			}
		}
		taken[bestIdx] = true
		top = append(top, agents[bestIdx])
	}
	return top
}

func (s *swarmStrategy) brighterPeer(agents []*swarmAgent, self *swarmAgent) *swarmAgent {
	peer := agents[s.rng.Intn(len(agents))]
	if peer != self && peer.score > self.score {
		return peer
	}
	return nil
}

func (s *swarmStrategy) abandonWorst(agents []*swarmAgent, rate float64) {
	n := int(float64(len(agents)) * rate)
	for k := 0; k < n; k++ {
		worst := 0
		for i, a := range agents {
			if a.score < agents[worst].score {
				worst = i
			}
		}
		agents[worst] = s.spawnAgent(randomPermutation(s.snap, s.rng))
	}
}

func swarmSizeSpecs(defaultAgents, defaultIters int) []ParamSpec {
	return []ParamSpec{
		seedSpec,
		{Name: "agents", Type: ParamInt, Default: defaultAgents, Description: "swarm size"},
		{Name: "iterations", Type: ParamInt, Default: defaultIters, Description: "update iterations"},
	}
}
