package solution

import (
	"github.com/alexanderramin/viva/internal/domain"
)

// Dedup keeps at most one assignment per project. Ties resolve to the
// earliest (slot index, classroom ID) pair. Returns the deduplicated list
// and the number of dropped assignments. Idempotent.
func Dedup(snap *domain.Snapshot, assignments []domain.Assignment) ([]domain.Assignment, int) {
	best := make(map[int]int, len(assignments)) // project -> index of keeper
	for i, a := range assignments {
		j, seen := best[a.ProjectID]
		if !seen || earlier(snap, a, assignments[j]) {
			best[a.ProjectID] = i
		}
	}

	keep := make(map[int]bool, len(best))
	for _, idx := range best {
		keep[idx] = true
	}

	out := make([]domain.Assignment, 0, len(best))
	dropped := 0
	for i, a := range assignments {
		if keep[i] {
			out = append(out, a.Clone())
		} else {
			dropped++
		}
	}
	return out, dropped
}

func earlier(snap *domain.Snapshot, a, b domain.Assignment) bool {
	ai, bi := snap.SlotIndex(a.TimeslotID), snap.SlotIndex(b.TimeslotID)
	if ai != bi {
		return ai < bi
	}
	return a.ClassroomID < b.ClassroomID
}
