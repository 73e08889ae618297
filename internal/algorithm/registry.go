package algorithm

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alexanderramin/viva/internal/fitness"
)

// Descriptor publishes one registered strategy: its tag, fitness category,
// recognized parameters, and a factory. The registry is the single point
// of truth for the available tag set.
type Descriptor struct {
	Tag         string
	Category    fitness.Category
	Description string
	Params      []ParamSpec
	New         func() Strategy
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Descriptor)
)

func register(d Descriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[d.Tag]; dup {
		panic(fmt.Sprintf("algorithm: duplicate tag %q", d.Tag))
	}
	registry[d.Tag] = d
}

// NormalizeTag canonicalizes a requested tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Lookup resolves a tag to its descriptor.
func Lookup(tag string) (Descriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[NormalizeTag(tag)]
	return d, ok
}

// Tags returns the registered tag set, sorted.
func Tags() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Descriptors returns all registered descriptors in tag order.
func Descriptors() []Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// FallbackTag is the strategy the orchestrator runs when the requested one
// degenerates.
const FallbackTag = "comprehensive"
