package orchestrator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_ReplacesNonFiniteFloats(t *testing.T) {
	in := map[string]any{
		"ok":   1.5,
		"nan":  math.NaN(),
		"pinf": math.Inf(1),
		"ninf": math.Inf(-1),
	}

	out, ok := Sanitize(in).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.5, out["ok"])
	assert.Nil(t, out["nan"])
	assert.Nil(t, out["pinf"])
	assert.Nil(t, out["ninf"])
}

func TestSanitize_RecursesNestedStructures(t *testing.T) {
	in := map[string]any{
		"stats": map[string]any{
			"ratio": math.Inf(1),
			"list":  []any{1.0, math.NaN(), "text"},
		},
	}

	out := Sanitize(in).(map[string]any)
	stats := out["stats"].(map[string]any)
	assert.Nil(t, stats["ratio"])
	list := stats["list"].([]any)
	assert.Equal(t, 1.0, list[0])
	assert.Nil(t, list[1])
	assert.Equal(t, "text", list[2])
}

func TestSanitize_OutputIsJSONEncodable(t *testing.T) {
	in := map[string]any{
		"fitness": math.NaN(),
		"nested":  []any{math.Inf(-1), float32(math.Inf(1))},
	}

	_, err := json.Marshal(Sanitize(in))
	assert.NoError(t, err)
}

func TestSanitize_LeavesOtherValuesAlone(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("hello"))
	assert.Equal(t, 42, Sanitize(42))
	assert.Equal(t, true, Sanitize(true))
	assert.Nil(t, Sanitize(nil))
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	in := map[string]any{"nan": math.NaN()}
	_ = Sanitize(in)
	assert.True(t, math.IsNaN(in["nan"].(float64)))
}
