// Package fitness normalizes solution quality to a 0–100 score so results
// from different strategies are comparable. The coverage, gap and duplicate
// axes are binary: full marks or zero. That cliff is deliberate for score
// parity across strategies, but it is non-smooth — optimizers that need a
// gradient should steer on their own objective vectors and use this score
// only for reporting.
package fitness

// Category buckets strategies into families sharing a default weight set.
type Category string

const (
	CategoryEvolutionary Category = "evolutionary"
	CategorySwarm        Category = "swarm"
	CategoryLocalSearch  Category = "local-search"
	CategoryMathProg     Category = "math-prog"
	CategoryConstraint   Category = "constraint"
	CategorySearch       Category = "search"
)

// Weights are the per-axis multipliers. A published family sums to 1.0.
type Weights struct {
	SlotReward       float64
	Coverage         float64
	GapPenalty       float64
	DuplicatePenalty float64
	LoadBalance      float64
	LateSlotPenalty  float64
}

// DefaultWeights is the base family shared by the evolutionary, swarm,
// local-search and search categories.
func DefaultWeights() Weights {
	return Weights{
		SlotReward:       0.25,
		Coverage:         0.25,
		GapPenalty:       0.20,
		DuplicatePenalty: 0.15,
		LoadBalance:      0.10,
		LateSlotPenalty:  0.05,
	}
}

// exactWeights shifts weight toward coverage and gap elimination: the
// math-prog and constraint families are expected to close those axes
// outright rather than trade them off.
func exactWeights() Weights {
	return Weights{
		SlotReward:       0.15,
		Coverage:         0.35,
		GapPenalty:       0.25,
		DuplicatePenalty: 0.10,
		LoadBalance:      0.10,
		LateSlotPenalty:  0.05,
	}
}

// WeightsFor returns the default weight family of a category.
func WeightsFor(cat Category) Weights {
	switch cat {
	case CategoryMathProg, CategoryConstraint:
		return exactWeights()
	default:
		return DefaultWeights()
	}
}

// Advisory axis contributions added on top of the weighted sum.
const (
	classroomSwitchShare = 0.025
	roleComplianceShare  = 0.025
)
