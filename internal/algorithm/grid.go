package algorithm

import (
	"github.com/alexanderramin/viva/internal/domain"
)

// grid tracks cell occupancy and instructor availability while a strategy
// builds or perturbs a solution.
type grid struct {
	snap  *domain.Snapshot
	cells map[[2]int]bool      // (room, slot) -> taken
	busy  map[int]map[int]bool // instructor -> slot -> busy
}

func newGrid(snap *domain.Snapshot) *grid {
	return &grid{
		snap:  snap,
		cells: make(map[[2]int]bool),
		busy:  make(map[int]map[int]bool),
	}
}

func gridFrom(snap *domain.Snapshot, assignments []domain.Assignment) *grid {
	g := newGrid(snap)
	for _, a := range assignments {
		g.occupy(a)
	}
	return g
}

func (g *grid) cellFree(room, slot int) bool {
	return !g.cells[[2]int{room, slot}]
}

func (g *grid) instructorFree(instructor, slot int) bool {
	return !g.busy[instructor][slot]
}

func (g *grid) juryFree(jury []int, slot int) bool {
	for _, ins := range jury {
		if !g.instructorFree(ins, slot) {
			return false
		}
	}
	return true
}

func (g *grid) occupy(a domain.Assignment) {
	g.cells[[2]int{a.ClassroomID, a.TimeslotID}] = true
	for _, ins := range a.InstructorIDs {
		if g.busy[ins] == nil {
			g.busy[ins] = make(map[int]bool)
		}
		g.busy[ins][a.TimeslotID] = true
	}
}

func (g *grid) release(a domain.Assignment) {
	delete(g.cells, [2]int{a.ClassroomID, a.TimeslotID})
	for _, ins := range a.InstructorIDs {
		if m := g.busy[ins]; m != nil {
			delete(m, a.TimeslotID)
		}
	}
}

// addJuror marks one extra instructor busy on an existing assignment's slot.
func (g *grid) addJuror(instructor, slot int) {
	if g.busy[instructor] == nil {
		g.busy[instructor] = make(map[int]bool)
	}
	g.busy[instructor][slot] = true
}

// consecutiveRun finds the earliest start index in the given room with
// `need` consecutive slots free, all of which the instructor can attend.
// Returns -1 when no such run exists.
func (g *grid) consecutiveRun(room, instructor, need int) int {
	slots := g.snap.SortedTimeslots()
	for start := 0; start+need <= len(slots); start++ {
		ok := true
		for k := 0; k < need; k++ {
			slot := slots[start+k]
			if !g.cellFree(room, slot.ID) || !g.instructorFree(instructor, slot.ID) {
				ok = false
				break
			}
		}
		if ok {
			return start
		}
	}
	return -1
}

// earliestCell finds the earliest (slot, room) pair where the cell is free
// and the whole jury can attend. Returns the room and slot IDs, or ok=false.
func (g *grid) earliestCell(jury []int) (room, slot int, ok bool) {
	for _, ts := range g.snap.SortedTimeslots() {
		if !g.juryFree(jury, ts.ID) {
			continue
		}
		for _, r := range g.snap.ClassroomIDs() {
			if g.cellFree(r, ts.ID) {
				return r, ts.ID, true
			}
		}
	}
	return 0, 0, false
}
