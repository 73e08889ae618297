package solution

import (
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
)

// GapsByClassroom returns, per classroom, the number of index deltas > 1
// between consecutive occupied slots.
func GapsByClassroom(snap *domain.Snapshot, assignments []domain.Assignment) map[int]int {
	occupied := make(map[int][]int)
	for _, a := range assignments {
		idx := snap.SlotIndex(a.TimeslotID)
		if idx < 0 {
			continue
		}
		occupied[a.ClassroomID] = append(occupied[a.ClassroomID], idx)
	}

	gaps := make(map[int]int, len(occupied))
	for room, indices := range occupied {
		sort.Ints(indices)
		count := 0
		for i := 1; i < len(indices); i++ {
			if indices[i]-indices[i-1] > 1 {
				count++
			}
		}
		if count > 0 {
			gaps[room] = count
		}
	}
	return gaps
}

// TotalGaps sums per-classroom gap counts.
func TotalGaps(snap *domain.Snapshot, assignments []domain.Assignment) int {
	total := 0
	for _, n := range GapsByClassroom(snap, assignments) {
		total += n
	}
	return total
}

// CountLate returns the number of assignments sitting in late slots.
func CountLate(snap *domain.Snapshot, assignments []domain.Assignment) int {
	n := 0
	for _, a := range assignments {
		if snap.IsLate(a.TimeslotID) {
			n++
		}
	}
	return n
}
