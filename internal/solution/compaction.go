package solution

import (
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
)

// Compact closes internal gaps within each classroom by pulling assignments
// toward the room's first occupied slot, without violating instructor
// availability. The room's anchor slot stays put. Returns the compacted
// copy and the number of moves made.
func Compact(snap *domain.Snapshot, assignments []domain.Assignment) ([]domain.Assignment, int) {
	return packRooms(snap, assignments, false)
}

// GapFree re-packs each classroom's assignments into one continuous block
// starting at the earliest timeslot, where instructor availability allows.
// More aggressive than Compact: the anchor moves too.
func GapFree(snap *domain.Snapshot, assignments []domain.Assignment) ([]domain.Assignment, int) {
	return packRooms(snap, assignments, true)
}

func packRooms(snap *domain.Snapshot, assignments []domain.Assignment, fromTop bool) ([]domain.Assignment, int) {
	out := domain.CloneAssignments(assignments)
	occ := buildOccupancy(out)
	slots := snap.SortedTimeslots()
	moves := 0

	byRoom := make(map[int][]int)
	for i, a := range out {
		byRoom[a.ClassroomID] = append(byRoom[a.ClassroomID], i)
	}

	for _, room := range snap.ClassroomIDs() {
		indices := byRoom[room]
		if len(indices) == 0 {
			continue
		}
		sort.SliceStable(indices, func(i, j int) bool {
			return snap.SlotIndex(out[indices[i]].TimeslotID) < snap.SlotIndex(out[indices[j]].TimeslotID)
		})

		next := snap.SlotIndex(out[indices[0]].TimeslotID)
		if fromTop {
			next = 0
		}
		for _, idx := range indices {
			cur := snap.SlotIndex(out[idx].TimeslotID)
			// Walk the earliest candidate forward until a feasible
			// slot is found or we reach the current position.
			target := next
			for target < cur && !occ.canMove(out, idx, room, slots[target].ID) {
				target++
			}
			if target < cur {
				occ.move(out, idx, room, slots[target].ID)
				moves++
				next = target + 1
			} else {
				next = cur + 1
			}
		}
	}
	return out, moves
}
