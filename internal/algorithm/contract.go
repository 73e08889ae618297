// Package algorithm holds the strategy plug-in contract, the tag registry,
// and the optimization strategies themselves. Every strategy consumes the
// same immutable snapshot, emits the same Result shape, and is scored by
// the fitness package with its category's default weights.
package algorithm

import (
	"context"
	"time"

	"github.com/alexanderramin/viva/internal/domain"
)

// Status values a strategy may terminate with. Anything other than
// StatusCompleted — or an empty assignment list — is degenerate and makes
// the orchestrator fall back.
const (
	StatusCompleted  = "completed"
	StatusError      = "error"
	StatusFailed     = "failed"
	StatusInfeasible = "infeasible"
)

// Result is the uniform output shape of every strategy.
type Result struct {
	Assignments      []domain.Assignment `json:"assignments"`
	Fitness          float64             `json:"fitness"`
	ExecutionSeconds float64             `json:"execution_time"`
	AlgorithmTag     string              `json:"algorithm_tag"`
	Status           string              `json:"status"`
	Parameters       Params              `json:"parameters,omitempty"`
	Stats            map[string]any      `json:"stats,omitempty"`

	// Populated by the orchestrator when the requested strategy
	// degenerated and the comprehensive fallback produced this result.
	FallbackUsed  bool   `json:"fallback_used,omitempty"`
	FallbackFrom  string `json:"fallback_from,omitempty"`
	OriginalError string `json:"original_error,omitempty"`
}

// Degenerate reports whether the result triggers the fallback path.
func (r Result) Degenerate() bool {
	if len(r.Assignments) == 0 {
		return true
	}
	switch r.Status {
	case StatusError, StatusFailed, StatusInfeasible:
		return true
	}
	return false
}

// Strategy is the plug-in contract. Initialize validates the snapshot and
// binds parameters; Optimize runs to completion or cancellation;
// EvaluateFitness delegates to the category's default fitness weights.
type Strategy interface {
	Initialize(snap *domain.Snapshot, params Params) error
	Optimize(ctx context.Context) Result
	EvaluateFitness(assignments []domain.Assignment) float64
}

// ParamType enumerates the published parameter descriptor types.
type ParamType string

const (
	ParamInt   ParamType = "int"
	ParamFloat ParamType = "float"
	ParamBool  ParamType = "bool"
	ParamStr   ParamType = "str"
)

// ParamSpec describes one recognized parameter of a strategy. Unknown keys
// in a request are ignored for forward compatibility.
type ParamSpec struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Default     any       `json:"default"`
	Description string    `json:"description"`
}

func startTimer() func() float64 {
	start := time.Now()
	return func() float64 { return time.Since(start).Seconds() }
}
