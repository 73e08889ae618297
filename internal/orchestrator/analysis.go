package orchestrator

import (
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/alexanderramin/viva/internal/algorithm"
	"github.com/alexanderramin/viva/internal/domain"
)

// Analysis is the advisory problem profile attached to each run: dataset
// dimensions, a capacity feasibility check, and the tags recommended for
// a problem of this size. It never affects the run's outcome.
type Analysis struct {
	ProjectCount    int
	InstructorCount int
	ClassroomCount  int
	TimeslotCount   int
	CellCount       int
	Feasible        bool
	RecommendedTags []string
}

// Map returns the analysis in the JSON shape embedded in run results.
func (a Analysis) Map() map[string]any {
	tags := make([]any, len(a.RecommendedTags))
	for i, tag := range a.RecommendedTags {
		tags[i] = tag
	}
	return map[string]any{
		"project_count":    a.ProjectCount,
		"instructor_count": a.InstructorCount,
		"classroom_count":  a.ClassroomCount,
		"timeslot_count":   a.TimeslotCount,
		"cell_count":       a.CellCount,
		"feasible":         a.Feasible,
		"recommended_tags": tags,
	}
}

type analysisEntry struct {
	analysis Analysis
	expires  time.Time
}

// AnalysisCache memoizes problem analyses under a TTL, keyed by a content
// hash of the dataset, tag, and parameters. A nil cache or zero TTL
// computes fresh every time.
type AnalysisCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[uint64]analysisEntry
}

func NewAnalysisCache(ttl time.Duration) *AnalysisCache {
	return &AnalysisCache{ttl: ttl, entries: make(map[uint64]analysisEntry)}
}

// Get returns the cached analysis for this (dataset, tag, params) triple,
// computing and remembering it on a miss.
func (c *AnalysisCache) Get(snap *domain.Snapshot, tag string, params algorithm.Params) Analysis {
	if c == nil || c.ttl <= 0 {
		return analyzeSnapshot(snap)
	}

	key, err := hashstructure.Hash(struct {
		Projects []int
		Rooms    []int
		Slots    int
		Tag      string
		Params   algorithm.Params
	}{projectIDs(snap), snap.ClassroomIDs(), len(snap.SortedTimeslots()), tag, params}, hashstructure.FormatV2, nil)
	if err != nil {
		return analyzeSnapshot(snap)
	}

	now := time.Now()
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && now.Before(e.expires) {
		c.mu.Unlock()
		return e.analysis
	}
	c.mu.Unlock()

	a := analyzeSnapshot(snap)
	c.mu.Lock()
	c.entries[key] = analysisEntry{analysis: a, expires: now.Add(c.ttl)}
	c.mu.Unlock()
	return a
}

func analyzeSnapshot(snap *domain.Snapshot) Analysis {
	projects := len(snap.Projects())
	rooms := len(snap.Classrooms())
	slots := len(snap.SortedTimeslots())
	cells := rooms * slots

	return Analysis{
		ProjectCount:    projects,
		InstructorCount: len(snap.Instructors()),
		ClassroomCount:  rooms,
		TimeslotCount:   slots,
		CellCount:       cells,
		Feasible:        cells >= projects && projects > 0,
		RecommendedTags: recommendTags(projects),
	}
}

// recommendTags suggests strategies by problem size: exact solvers stay
// tractable on small instances, population methods pay off on mid-sized
// ones, and large instances call for constructive heuristics.
func recommendTags(projects int) []string {
	switch {
	case projects <= 24:
		return []string{"cp-sat", "ilp", "branch-bound", algorithm.FallbackTag}
	case projects <= 60:
		return []string{algorithm.FallbackTag, "genetic", "nsga-ii", "simulated-annealing"}
	default:
		return []string{"greedy", "greedy-local-search", algorithm.FallbackTag}
	}
}

func projectIDs(snap *domain.Snapshot) []int {
	ids := make([]int, len(snap.Projects()))
	for i, p := range snap.Projects() {
		ids[i] = p.ID
	}
	return ids
}
