package orchestrator

import "math"

// Sanitize replaces every ±Inf and NaN in a JSON-shaped value with nil,
// recursing through maps and slices. Persisted and transported result
// payloads must pass through here: encoding/json rejects non-finite
// floats outright.
func Sanitize(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Sanitize(val)
		}
		return out
	default:
		return v
	}
}
