package algorithm

import (
	"github.com/alexanderramin/viva/internal/fitness"
)

// Canonical update rules translated onto the discrete decision space; see
// the swarmConfig field docs for the mapping each knob represents.

func init() {
	register(Descriptor{
		Tag:         "pso",
		Category:    fitness.CategorySwarm,
		Description: "particle swarm: inertia decays while pull toward personal and global bests grows",
		Params:      swarmSizeSpecs(30, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("pso", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 30),
						iterations: p.Int("iterations", 80),
						// inertia fades: adoption of the best grows, exploration shrinks
						adoptStart: 0.4, adoptEnd: 0.9,
						exploreStart: 0.5, exploreEnd: 0.1,
						guides:       1,
						personalBest: true,
					}
				},
			}
		},
	})

	register(Descriptor{
		Tag:         "firefly",
		Category:    fitness.CategorySwarm,
		Description: "fireflies drift toward brighter peers; brightness is fitness",
		Params:      swarmSizeSpecs(25, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("firefly", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 25),
						iterations: p.Int("iterations", 80),
						adoptStart: 0.6, adoptEnd: 0.6,
						exploreStart: 0.4, exploreEnd: 0.15,
						guides:         1,
						peerAttraction: 0.6,
					}
				},
			}
		},
	})

	register(Descriptor{
		Tag:         "grey-wolf",
		Category:    fitness.CategorySwarm,
		Description: "pack hunts behind alpha, beta and delta leaders with a shrinking encircle radius",
		Params:      swarmSizeSpecs(24, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("grey-wolf", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 24),
						iterations: p.Int("iterations", 80),
						// encircling tightens: a-coefficient 2→0 maps to rising adoption
						adoptStart: 0.3, adoptEnd: 0.95,
						exploreStart: 0.5, exploreEnd: 0.05,
						guides: 3,
					}
				},
			}
		},
	})

	register(Descriptor{
		Tag:         "cuckoo",
		Category:    fitness.CategorySwarm,
		Description: "Lévy-flight exploration with abandonment of the worst nests",
		Params:      swarmSizeSpecs(20, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("cuckoo", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 20),
						iterations: p.Int("iterations", 80),
						adoptStart: 0.5, adoptEnd: 0.7,
						// heavy-tailed exploration stays high throughout
						exploreStart: 0.6, exploreEnd: 0.4,
						guides:      1,
						abandonRate: p.Float("abandon_rate", 0.25),
					}
				},
			}
		},
	})

	register(Descriptor{
		Tag:         "bee",
		Category:    fitness.CategorySwarm,
		Description: "artificial bee colony: employed and onlooker phases plus scouting",
		Params:      swarmSizeSpecs(30, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("bee", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 30),
						iterations: p.Int("iterations", 80),
						adoptStart: 0.5, adoptEnd: 0.8,
						exploreStart: 0.35, exploreEnd: 0.2,
						guides:         1,
						peerAttraction: 0.4, // onlookers recruit toward good sources
						abandonRate:    0.15,
					}
				},
			}
		},
	})

	register(Descriptor{
		Tag:         "bat",
		Category:    fitness.CategorySwarm,
		Description: "echolocation: pulse rate rises and loudness falls as bats close in",
		Params:      swarmSizeSpecs(24, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("bat", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 24),
						iterations: p.Int("iterations", 80),
						// pulse emission rate grows toward the best
						adoptStart: 0.35, adoptEnd: 0.9,
						// loudness decays: fewer wild jumps late in the run
						exploreStart: 0.6, exploreEnd: 0.1,
						guides:       1,
						personalBest: true,
					}
				},
			}
		},
	})

	register(Descriptor{
		Tag:         "whale",
		Category:    fitness.CategorySwarm,
		Description: "shrinking-spiral encirclement of the best solution",
		Params:      swarmSizeSpecs(24, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("whale", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 24),
						iterations: p.Int("iterations", 80),
						adoptStart: 0.4, adoptEnd: 1.0,
						exploreStart: 0.45, exploreEnd: 0.05,
						guides: 1,
					}
				},
			}
		},
	})

	register(Descriptor{
		Tag:         "dragonfly",
		Category:    fitness.CategorySwarm,
		Description: "separation/alignment/cohesion blended between swarm peers and the food source",
		Params:      swarmSizeSpecs(26, 80),
		New: func() Strategy {
			return &swarmStrategy{
				base: newBase("dragonfly", fitness.CategorySwarm),
				cfg: func(p Params) swarmConfig {
					return swarmConfig{
						agents:     p.Int("agents", 26),
						iterations: p.Int("iterations", 80),
						adoptStart: 0.5, adoptEnd: 0.85,
						exploreStart: 0.4, exploreEnd: 0.15,
						guides:         1,
						peerAttraction: 0.5, // cohesion with neighbors
					}
				},
			}
		},
	})
}
