package algorithm

import (
	"context"
	"math/rand"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// tabuStrategy forbids recently-moved projects for a tenure of iterations.
// Aspiration overrides the taboo when a move beats the best known score.
type tabuStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "tabu-search",
		Category:    fitness.CategoryLocalSearch,
		Description: "neighborhood search with a recency taboo and aspiration override",
		Params: []ParamSpec{
			seedSpec,
			{Name: "iterations", Type: ParamInt, Default: 3000, Description: "search steps"},
			{Name: "tenure", Type: ParamInt, Default: 12, Description: "iterations a moved project stays taboo"},
			{Name: "candidates", Type: ParamInt, Default: 8, Description: "neighbors sampled per step"},
		},
		New: func() Strategy { return &tabuStrategy{base: newBase("tabu-search", fitness.CategoryLocalSearch)} },
	})
}

func (s *tabuStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()

	current := constructConsecutive(s.snap, s.rng)
	current, _ = solution.Dedup(s.snap, current)
	best := domain.CloneAssignments(current)
	bestScore := s.EvaluateFitness(best)
	currentScore := bestScore

	iterations := s.params.Int("iterations", 3000)
	tenure := s.params.Int("tenure", 12)
	sample := s.params.Int("candidates", 8)
	tabuUntil := make(map[int]int) // project -> iteration the taboo expires

	aspirated := 0
	for iter := 0; iter < iterations; iter++ {
		if ctx.Err() != nil {
			break
		}

		var pick []domain.Assignment
		pickScore := -1.0
		pickProject := 0
		for c := 0; c < sample; c++ {
			candidate, moved := movedProject(s.snap, s.rng, current)
			if candidate == nil {
				continue
			}
			score := s.EvaluateFitness(candidate)
			taboo := tabuUntil[moved] > iter
			if taboo && score <= bestScore {
				continue
			}
			if taboo {
				aspirated++
			}
			if score > pickScore {
				pick, pickScore, pickProject = candidate, score, moved
			}
		}
		if pick == nil {
			continue
		}

		current, currentScore = pick, pickScore
		tabuUntil[pickProject] = iter + tenure
		if currentScore > bestScore {
			best = domain.CloneAssignments(current)
			bestScore = currentScore
		}
	}

	best, _, flagged := solution.RelocateLate(s.snap, best)
	return s.result(best, elapsed(), map[string]any{
		"aspirations":  aspirated,
		"late_flagged": flagged,
	})
}

// movedProject applies one relocate move and reports which project moved.
func movedProject(snap *domain.Snapshot, rng *rand.Rand, assignments []domain.Assignment) ([]domain.Assignment, int) {
	if len(assignments) == 0 {
		return nil, 0
	}
	idx := rng.Intn(len(assignments))
	out := domain.CloneAssignments(assignments)
	g := gridFrom(snap, out)
	g.release(out[idx])

	slots := snap.SortedTimeslots()
	rooms := snap.ClassroomIDs()
	for attempt := 0; attempt < 24; attempt++ {
		slot := slots[rng.Intn(len(slots))]
		room := rooms[rng.Intn(len(rooms))]
		if room == out[idx].ClassroomID && slot.ID == out[idx].TimeslotID {
			continue
		}
		if g.cellFree(room, slot.ID) && g.juryFree(out[idx].InstructorIDs, slot.ID) {
			out[idx].ClassroomID = room
			out[idx].TimeslotID = slot.ID
			return out, out[idx].ProjectID
		}
	}
	return nil, 0
}
