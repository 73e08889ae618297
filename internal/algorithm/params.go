package algorithm

import (
	"hash/fnv"
	"strconv"
	"time"
)

// Params is the dynamic parameter map bound into each strategy. JSON
// numbers arrive as float64; the typed getters coerce leniently and fall
// back to the default on missing or unusable values.
type Params map[string]any

func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func (p Params) Bool(key string, def bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (p Params) Str(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Seed returns the run's RNG seed. An explicit "seed" parameter makes the
// run reproducible bit-for-bit; otherwise the seed hashes the wall clock.
func (p Params) Seed() int64 {
	if _, ok := p["seed"]; ok {
		if s := p.Int("seed", 0); s != 0 {
			return int64(s)
		}
	}
	h := fnv.New64a()
	b := strconv.AppendInt(nil, time.Now().UnixNano(), 10)
	_, _ = h.Write(b)
	return int64(h.Sum64())
}

// Clone returns a shallow copy safe to annotate.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

var seedSpec = ParamSpec{
	Name:        "seed",
	Type:        ParamInt,
	Default:     0,
	Description: "RNG seed; 0 or absent derives one from the wall clock",
}

var timeLimitSpec = ParamSpec{
	Name:        "time_limit",
	Type:        ParamFloat,
	Default:     5.0,
	Description: "solver time limit in seconds",
}
