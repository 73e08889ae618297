package algorithm

import (
	"context"
	"math/rand"

	"github.com/alexanderramin/viva/internal/domain"
)

// moveRandom relocates one random assignment to a random feasible cell.
// Returns the mutated copy and whether a move was applied.
func moveRandom(snap *domain.Snapshot, rng *rand.Rand, assignments []domain.Assignment) ([]domain.Assignment, bool) {
	if len(assignments) == 0 {
		return assignments, false
	}
	out := domain.CloneAssignments(assignments)
	idx := rng.Intn(len(out))
	g := gridFrom(snap, out)
	g.release(out[idx])

	slots := snap.SortedTimeslots()
	rooms := snap.ClassroomIDs()
	// Bounded random probing keeps a move cheap on dense grids.
	for attempt := 0; attempt < 24; attempt++ {
		slot := slots[rng.Intn(len(slots))]
		room := rooms[rng.Intn(len(rooms))]
		if room == out[idx].ClassroomID && slot.ID == out[idx].TimeslotID {
			continue
		}
		if g.cellFree(room, slot.ID) && g.juryFree(out[idx].InstructorIDs, slot.ID) {
			out[idx].ClassroomID = room
			out[idx].TimeslotID = slot.ID
			return out, true
		}
	}
	return assignments, false
}

// swapCells exchanges the cells of two random assignments when both juries
// stay conflict-free.
func swapCells(snap *domain.Snapshot, rng *rand.Rand, assignments []domain.Assignment) ([]domain.Assignment, bool) {
	if len(assignments) < 2 {
		return assignments, false
	}
	out := domain.CloneAssignments(assignments)
	i := rng.Intn(len(out))
	j := rng.Intn(len(out))
	if i == j {
		return assignments, false
	}
	g := gridFrom(snap, out)
	g.release(out[i])
	g.release(out[j])

	if !g.juryFree(out[i].InstructorIDs, out[j].TimeslotID) ||
		!g.juryFree(out[j].InstructorIDs, out[i].TimeslotID) {
		return assignments, false
	}
	out[i].ClassroomID, out[j].ClassroomID = out[j].ClassroomID, out[i].ClassroomID
	out[i].TimeslotID, out[j].TimeslotID = out[j].TimeslotID, out[i].TimeslotID
	return out, true
}

// perturb applies one random neighborhood move (relocate or swap).
func perturb(snap *domain.Snapshot, rng *rand.Rand, assignments []domain.Assignment) ([]domain.Assignment, bool) {
	if rng.Float64() < 0.7 {
		return moveRandom(snap, rng, assignments)
	}
	return swapCells(snap, rng, assignments)
}

// hillClimb applies improving random moves until the iteration budget runs
// out or the context is cancelled. Never returns a worse solution.
func hillClimb(
	ctx context.Context,
	snap *domain.Snapshot,
	rng *rand.Rand,
	assignments []domain.Assignment,
	eval func([]domain.Assignment) float64,
	iterations int,
) ([]domain.Assignment, int) {
	best := assignments
	bestScore := eval(best)
	improved := 0
	for i := 0; i < iterations; i++ {
		if ctx.Err() != nil {
			break
		}
		candidate, ok := perturb(snap, rng, best)
		if !ok {
			continue
		}
		if score := eval(candidate); score > bestScore {
			best, bestScore = candidate, score
			improved++
		}
	}
	return best, improved
}
