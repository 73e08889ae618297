package solution

import (
	"github.com/alexanderramin/viva/internal/domain"
)

// RelocateLate tries to move every assignment sitting in a late slot into
// the earliest feasible non-late (room, slot) cell with the whole jury
// free. Assignments that cannot be moved are flagged LatePenalized rather
// than dropped. Returns the transformed copy, the number moved, and the
// number flagged.
func RelocateLate(snap *domain.Snapshot, assignments []domain.Assignment) ([]domain.Assignment, int, int) {
	out := domain.CloneAssignments(assignments)
	occ := buildOccupancy(out)
	slots := snap.SortedTimeslots()
	rooms := snap.ClassroomIDs()
	moved, flagged := 0, 0

	for _, idx := range sortBySlotThenRoom(snap, out) {
		if !snap.IsLate(out[idx].TimeslotID) {
			continue
		}
		relocated := false
	search:
		for _, slot := range slots {
			if slot.IsLate() {
				break // slots are chronological; everything after is late too
			}
			for _, room := range rooms {
				if occ.canMove(out, idx, room, slot.ID) {
					occ.move(out, idx, room, slot.ID)
					out[idx].LatePenalized = false
					moved++
					relocated = true
					break search
				}
			}
		}
		if !relocated {
			out[idx].LatePenalized = true
			flagged++
		}
	}
	return out, moved, flagged
}
