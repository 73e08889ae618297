package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/viva/internal/algorithm"
)

// parseParams converts repeated key=value flags into strategy parameters.
// Values are coerced in order: int, float, bool, string. Integers win over
// booleans so seed=1 stays numeric.
func parseParams(pairs []string) (algorithm.Params, error) {
	params := make(algorithm.Params, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = coerce(value)
	}
	return params, nil
}

func coerce(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
