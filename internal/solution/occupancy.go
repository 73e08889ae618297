// Package solution holds the shared repair and inspection utilities every
// strategy's output passes through: conflict detection, gap accounting,
// dedup, compaction, reflow and late-slot relocation. All transforms work
// on copies and return the transformed list plus a modification count.
package solution

import (
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
)

type cell struct {
	room int
	slot int
}

// occupancy indexes a solution for feasibility checks: which cells are
// taken and which instructors are busy at which slot.
type occupancy struct {
	cells map[cell]int         // cell -> index into assignments
	busy  map[int]map[int]bool // instructor -> slot -> busy
}

func buildOccupancy(assignments []domain.Assignment) *occupancy {
	occ := &occupancy{
		cells: make(map[cell]int, len(assignments)),
		busy:  make(map[int]map[int]bool),
	}
	for i, a := range assignments {
		occ.cells[cell{a.ClassroomID, a.TimeslotID}] = i
		for _, ins := range a.InstructorIDs {
			occ.markBusy(ins, a.TimeslotID)
		}
	}
	return occ
}

func (o *occupancy) markBusy(instructor, slot int) {
	if o.busy[instructor] == nil {
		o.busy[instructor] = make(map[int]bool)
	}
	o.busy[instructor][slot] = true
}

func (o *occupancy) clearBusy(instructor, slot int) {
	if m := o.busy[instructor]; m != nil {
		delete(m, slot)
	}
}

func (o *occupancy) cellTaken(room, slot int) bool {
	_, taken := o.cells[cell{room, slot}]
	return taken
}

// canMove reports whether the assignment at index idx can occupy the target
// cell: the cell must be free and every jury member free at the target slot
// (ignoring the assignment's own current slot).
func (o *occupancy) canMove(assignments []domain.Assignment, idx, room, slot int) bool {
	a := assignments[idx]
	if room == a.ClassroomID && slot == a.TimeslotID {
		return false
	}
	if o.cellTaken(room, slot) {
		return false
	}
	if slot == a.TimeslotID {
		return true
	}
	for _, ins := range a.InstructorIDs {
		if o.busy[ins][slot] {
			return false
		}
	}
	return true
}

// move relocates the assignment at idx to the target cell, updating the
// indexes in place.
func (o *occupancy) move(assignments []domain.Assignment, idx, room, slot int) {
	a := &assignments[idx]
	delete(o.cells, cell{a.ClassroomID, a.TimeslotID})
	for _, ins := range a.InstructorIDs {
		o.clearBusy(ins, a.TimeslotID)
	}
	a.ClassroomID = room
	a.TimeslotID = slot
	o.cells[cell{room, slot}] = idx
	for _, ins := range a.InstructorIDs {
		o.markBusy(ins, slot)
	}
}

// sortBySlotThenRoom orders assignment indices chronologically, breaking
// ties on classroom ID for determinism.
func sortBySlotThenRoom(snap *domain.Snapshot, assignments []domain.Assignment) []int {
	order := make([]int, len(assignments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ai, aj := assignments[order[i]], assignments[order[j]]
		si, sj := snap.SlotIndex(ai.TimeslotID), snap.SlotIndex(aj.TimeslotID)
		if si != sj {
			return si < sj
		}
		return ai.ClassroomID < aj.ClassroomID
	})
	return order
}
