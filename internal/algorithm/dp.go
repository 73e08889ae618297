package algorithm

import (
	"context"
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// dpStrategy schedules by exact dynamic programming per room. Responsible
// groups are dealt to rooms longest-first, then each room solves a
// weighted-interval problem: dp[slot][group] is the best total reward for
// packing the room's remaining groups as consecutive blocks from that slot
// on. Groups never share a responsible across rooms, so the per-room
// subproblems are independent and the DP is exact for the dealt partition.
type dpStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "dp",
		Category:    fitness.CategorySearch,
		Description: "per-room dynamic programming over consecutive instructor blocks",
		Params:      []ParamSpec{seedSpec},
		New:         func() Strategy { return &dpStrategy{base: newBase("dp", fitness.CategorySearch)} },
	})
}

type dpGroup struct {
	responsible int
	projects    []domain.Project
}

func (s *dpStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	groups := responsibleGroups(s.snap)
	slots := s.snap.SortedTimeslots()
	rooms := s.snap.ClassroomIDs()
	if len(rooms) == 0 {
		return s.failure(StatusInfeasible, elapsed(), nil)
	}

	// Longest-first dealing keeps the per-room loads even, which is what
	// makes the independent per-room DPs a good partition.
	perRoom := make(map[int][]dpGroup, len(rooms))
	roomLoad := make(map[int]int, len(rooms))
	for _, grp := range groups {
		best := rooms[0]
		for _, r := range rooms[1:] {
			if roomLoad[r] < roomLoad[best] {
				best = r
			}
		}
		perRoom[best] = append(perRoom[best], grp)
		roomLoad[best] += len(grp.projects)
	}

	g := newGrid(s.snap)
	var out []domain.Assignment
	leftover := 0
	for _, room := range rooms {
		if ctx.Err() != nil {
			break
		}
		placed, rest := packRoomDP(s.snap, g, room, perRoom[room], slots)
		out = append(out, placed...)
		// Groups the DP could not fit fall back to the earliest cell in
		// any room, project by project.
		for _, grp := range rest {
			for _, p := range grp.projects {
				r, slot, ok := g.earliestCell([]int{p.ResponsibleID})
				if !ok {
					leftover++
					continue
				}
				a := domain.Assignment{
					ProjectID:     p.ID,
					ClassroomID:   r,
					TimeslotID:    slot,
					InstructorIDs: []int{p.ResponsibleID},
					IsMakeup:      p.IsMakeup,
				}
				g.occupy(a)
				out = append(out, a)
			}
		}
	}

	completeJuries(s.snap, g, out)
	out, _, flagged := solution.RelocateLate(s.snap, out)

	return s.result(out, elapsed(), map[string]any{
		"rooms":        len(rooms),
		"unplaced":     leftover,
		"late_flagged": flagged,
	})
}

func responsibleGroups(snap *domain.Snapshot) []dpGroup {
	byResp := snap.ProjectsByResponsible()
	groups := make([]dpGroup, 0, len(byResp))
	for resp, projects := range byResp {
		sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
		groups = append(groups, dpGroup{responsible: resp, projects: projects})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].projects) != len(groups[j].projects) {
			return len(groups[i].projects) > len(groups[j].projects)
		}
		return groups[i].responsible < groups[j].responsible
	})
	return groups
}

// packRoomDP solves one room exactly and returns the realized assignments
// plus the groups that did not fit. dp[i][j] is the best reward packing
// groups[j:] into slots[i:], where a placed group occupies a consecutive
// block starting at its chosen slot. Groups are considered in the dealt
// order (longest first); the DP picks each block's start slot, and an
// unplaced group costs more than any block can earn.
func packRoomDP(snap *domain.Snapshot, g *grid, room int, groups []dpGroup, slots []domain.Timeslot) ([]domain.Assignment, []dpGroup) {
	n, m := len(slots), len(groups)
	if m == 0 {
		return nil, nil
	}

	const unplacedPenalty = 20000 // dominates any single block's reward

	dp := make([][]int, n+1)
	choice := make([][]bool, n+1) // true = place group j at slot i
	for i := range dp {
		dp[i] = make([]int, m+1)
		choice[i] = make([]bool, m+1)
	}
	for j := m - 1; j >= 0; j-- {
		dp[n][j] = dp[n][j+1] - unplacedPenalty
	}

	for i := n - 1; i >= 0; i-- {
		for j := m; j >= 0; j-- {
			if j == m {
				dp[i][j] = 0
				continue
			}
			// Skip slot i.
			best := dp[i+1][j]
			// Place group j at i when the block fits and the responsible
			// is free across it.
			length := len(groups[j].projects)
			if i+length <= n && blockFree(g, room, groups[j].responsible, slots, i, length) {
				value := 0
				for k := 0; k < length; k++ {
					value += slots[i+k].Reward()
				}
				if v := value + dp[i+length][j+1]; v > best {
					best = v
					choice[i][j] = true
				}
			}
			dp[i][j] = best
		}
	}

	var placed []domain.Assignment
	var rest []dpGroup
	i, j := 0, 0
	for j < m {
		if i >= n {
			rest = append(rest, groups[j])
			j++
			continue
		}
		if !choice[i][j] {
			i++
			continue
		}
		for k, p := range groups[j].projects {
			a := domain.Assignment{
				ProjectID:     p.ID,
				ClassroomID:   room,
				TimeslotID:    slots[i+k].ID,
				InstructorIDs: []int{groups[j].responsible},
				IsMakeup:      p.IsMakeup,
			}
			g.occupy(a)
			placed = append(placed, a)
		}
		i += len(groups[j].projects)
		j++
	}
	return placed, rest
}

func blockFree(g *grid, room, instructor int, slots []domain.Timeslot, start, length int) bool {
	for k := 0; k < length; k++ {
		slot := slots[start+k]
		if !g.cellFree(room, slot.ID) || !g.instructorFree(instructor, slot.ID) {
			return false
		}
	}
	return true
}
