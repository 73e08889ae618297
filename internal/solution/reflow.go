package solution

import (
	"github.com/alexanderramin/viva/internal/domain"
)

// Reflow walks the solution in chronological order and moves each
// assignment to the earliest strictly-earlier (room, slot) cell that keeps
// the whole jury free. A pass can only decrease the sum of slot indices.
// Returns the reflowed copy and the number of moves.
func Reflow(snap *domain.Snapshot, assignments []domain.Assignment) ([]domain.Assignment, int) {
	out := domain.CloneAssignments(assignments)
	occ := buildOccupancy(out)
	slots := snap.SortedTimeslots()
	rooms := snap.ClassroomIDs()
	moves := 0

	for _, idx := range sortBySlotThenRoom(snap, out) {
		cur := snap.SlotIndex(out[idx].TimeslotID)
	search:
		for si := 0; si < cur; si++ {
			for _, room := range rooms {
				if occ.canMove(out, idx, room, slots[si].ID) {
					occ.move(out, idx, room, slots[si].ID)
					moves++
					break search
				}
			}
		}
	}
	return out, moves
}
