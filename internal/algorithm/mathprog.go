package algorithm

import (
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
)

// mpModel is the 0/1 formulation shared by the math-prog strategies:
// binary x[p][c] over projects p and cells c = (room, slot), objective
// coefficients from the slot reward table, at-most-one rows per project
// and per cell, and a no-overlap row per responsible instructor and slot.
type mpModel struct {
	snap     *domain.Snapshot
	projects []domain.Project
	slots    []domain.Timeslot
	rooms    []int
	rewards  []int // aligned with slots
}

func newMPModel(snap *domain.Snapshot) *mpModel {
	slots := snap.SortedTimeslots()
	rewards := make([]int, len(slots))
	for i, ts := range slots {
		rewards[i] = ts.Reward()
	}
	return &mpModel{
		snap:     snap,
		projects: orderByGroupSize(snap),
		slots:    slots,
		rooms:    snap.ClassroomIDs(),
		rewards:  rewards,
	}
}

// relaxationBound solves the capacity-only LP relaxation for `remaining`
// unplaced projects given the cells already consumed per slot: drop the
// instructor rows, let the mass flow to the highest-reward slots first.
// Its optimum is integral here, so it doubles as a valid search bound.
func (m *mpModel) relaxationBound(remaining int, usedPerSlot []int) int {
	order := make([]int, len(m.slots))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return m.rewards[order[a]] > m.rewards[order[b]] })

	bound := 0
	for _, si := range order {
		if remaining == 0 {
			break
		}
		free := len(m.rooms) - usedPerSlot[si]
		if free <= 0 {
			continue
		}
		take := min(free, remaining)
		bound += take * m.rewards[si]
		remaining -= take
	}
	return bound
}

// assignment materializes x[p][(room,slot)] = 1 as a concrete assignment.
func (m *mpModel) assignment(p domain.Project, room, slotID int) domain.Assignment {
	return domain.Assignment{
		ProjectID:     p.ID,
		ClassroomID:   room,
		TimeslotID:    slotID,
		InstructorIDs: []int{p.ResponsibleID},
		IsMakeup:      p.IsMakeup,
	}
}
