package algorithm

import (
	"math/rand"
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
)

// constructConsecutive is the shared construction heuristic: consecutive
// grouping with strategic pairing. One instructor's defenses land in
// adjacent slots of one room; afterwards instructors who ended up adjacent
// within a room serve reciprocally on each other's juries. Instructor
// iteration order is randomized per run for run-to-run variety.
func constructConsecutive(snap *domain.Snapshot, rng *rand.Rand) []domain.Assignment {
	byResp := snap.ProjectsByResponsible()

	order := make([]int, 0, len(byResp))
	for id := range byResp {
		order = append(order, id)
	}
	sort.Ints(order)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	g := newGrid(snap)
	slots := snap.SortedTimeslots()
	var out []domain.Assignment

	for _, resp := range order {
		projects := byResp[resp]
		sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

		room, start := bestConsecutiveBlock(g, resp, len(projects))
		if start >= 0 {
			for k, p := range projects {
				a := domain.Assignment{
					ProjectID:     p.ID,
					ClassroomID:   room,
					TimeslotID:    slots[start+k].ID,
					InstructorIDs: []int{resp},
					IsMakeup:      p.IsMakeup,
				}
				g.occupy(a)
				out = append(out, a)
			}
			continue
		}

		// No room holds the whole block: fall back to the earliest
		// available cell anywhere, project by project.
		for _, p := range projects {
			r, slot, ok := g.earliestCell([]int{resp})
			if !ok {
				break // grid exhausted; coverage axis will report it
			}
			a := domain.Assignment{
				ProjectID:     p.ID,
				ClassroomID:   r,
				TimeslotID:    slot,
				InstructorIDs: []int{resp},
				IsMakeup:      p.IsMakeup,
			}
			g.occupy(a)
			out = append(out, a)
		}
	}

	pairAdjacentInstructors(snap, g, out)
	completeJuries(snap, g, out)
	return out
}

// bestConsecutiveBlock picks, over all rooms, the block with the earliest
// start index that fits the instructor's project count.
func bestConsecutiveBlock(g *grid, instructor, need int) (room, start int) {
	bestRoom, bestStart := 0, -1
	for _, r := range g.snap.ClassroomIDs() {
		s := g.consecutiveRun(r, instructor, need)
		if s >= 0 && (bestStart < 0 || s < bestStart) {
			bestRoom, bestStart = r, s
		}
	}
	return bestRoom, bestStart
}

// pairAdjacentInstructors applies strategic pairing: within each room,
// instructors whose blocks neighbor each other chronologically join each
// other's juries, provided the slot does not already list them and they
// are free at that slot.
func pairAdjacentInstructors(snap *domain.Snapshot, g *grid, assignments []domain.Assignment) {
	type block struct {
		instructor int
		firstIdx   int
	}
	roomBlocks := make(map[int][]block)
	for _, a := range assignments {
		resp := a.InstructorIDs[0]
		idx := snap.SlotIndex(a.TimeslotID)
		found := false
		for i, bl := range roomBlocks[a.ClassroomID] {
			if bl.instructor == resp {
				if idx < bl.firstIdx {
					roomBlocks[a.ClassroomID][i].firstIdx = idx
				}
				found = true
				break
			}
		}
		if !found {
			roomBlocks[a.ClassroomID] = append(roomBlocks[a.ClassroomID], block{resp, idx})
		}
	}

	for room, blocks := range roomBlocks {
		sort.Slice(blocks, func(i, j int) bool { return blocks[i].firstIdx < blocks[j].firstIdx })
		for i := 0; i+1 < len(blocks); i++ {
			a, b := blocks[i].instructor, blocks[i+1].instructor
			attachJuror(snap, g, assignments, room, a, b)
			attachJuror(snap, g, assignments, room, b, a)
		}
	}
}

// attachJuror adds juror to every assignment of owner inside room where
// the juror is free.
func attachJuror(snap *domain.Snapshot, g *grid, assignments []domain.Assignment, room, owner, juror int) {
	if owner == juror {
		return
	}
	for i := range assignments {
		a := &assignments[i]
		if a.ClassroomID != room || a.InstructorIDs[0] != owner {
			continue
		}
		if a.HasInstructor(juror) || !g.instructorFree(juror, a.TimeslotID) {
			continue
		}
		a.InstructorIDs = append(a.InstructorIDs, juror)
		g.addJuror(juror, a.TimeslotID)
	}
}

// completeJuries tops up thesis juries below the minimum size, preferring
// the least-loaded free faculty member.
func completeJuries(snap *domain.Snapshot, g *grid, assignments []domain.Assignment) {
	loads := make(map[int]int)
	for _, a := range assignments {
		for _, ins := range a.InstructorIDs {
			loads[ins]++
		}
	}

	for i := range assignments {
		a := &assignments[i]
		p, ok := snap.ProjectByID(a.ProjectID)
		if !ok {
			continue
		}
		for len(a.InstructorIDs) < p.MinJurySize() {
			juror := pickJuror(snap, g, loads, a)
			if juror == 0 {
				juror = relocateForJuror(snap, g, loads, a)
			}
			if juror == 0 {
				break // no cell anywhere seats another juror
			}
			a.InstructorIDs = append(a.InstructorIDs, juror)
			g.addJuror(juror, a.TimeslotID)
			loads[juror]++
		}
	}
}

// relocateForJuror moves an understaffed assignment to the earliest cell
// its jury plus one extra member can all attend, and returns that member.
// Consecutive grouping runs every instructor's block concurrently across
// rooms, so a minimum-size jury can be unseatable in place; moving the
// defense itself is then the only repair.
func relocateForJuror(snap *domain.Snapshot, g *grid, loads map[int]int, a *domain.Assignment) int {
	g.release(*a)

	bestJuror, bestRoom, bestSlot := 0, 0, 0
	bestIdx, bestLoad := -1, 0
	consider := func(ins domain.Instructor) {
		if a.HasInstructor(ins.ID) {
			return
		}
		jury := append(append([]int(nil), a.InstructorIDs...), ins.ID)
		room, slot, ok := g.earliestCell(jury)
		if !ok {
			return
		}
		idx := snap.SlotIndex(slot)
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && loads[ins.ID] < bestLoad) {
			bestJuror, bestRoom, bestSlot = ins.ID, room, slot
			bestIdx, bestLoad = idx, loads[ins.ID]
		}
	}
	for _, ins := range snap.Instructors() {
		if ins.Rank == domain.RankFaculty {
			consider(ins)
		}
	}
	if bestJuror == 0 {
		for _, ins := range snap.Instructors() {
			consider(ins)
		}
	}
	if bestJuror == 0 {
		g.occupy(*a)
		return 0
	}

	a.ClassroomID = bestRoom
	a.TimeslotID = bestSlot
	g.occupy(*a)
	return bestJuror
}

func pickJuror(snap *domain.Snapshot, g *grid, loads map[int]int, a *domain.Assignment) int {
	best, bestLoad := 0, 0
	consider := func(ins domain.Instructor) {
		if a.HasInstructor(ins.ID) || !g.instructorFree(ins.ID, a.TimeslotID) {
			return
		}
		if best == 0 || loads[ins.ID] < bestLoad {
			best, bestLoad = ins.ID, loads[ins.ID]
		}
	}
	for _, ins := range snap.Instructors() {
		if ins.Rank == domain.RankFaculty {
			consider(ins)
		}
	}
	if best != 0 {
		return best
	}
	for _, ins := range snap.Instructors() {
		consider(ins)
	}
	return best
}
