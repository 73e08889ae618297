package orchestrator

import (
	"strconv"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/solution"
)

// buildGapReport summarizes idle cells per classroom: occupied slot count,
// internal gap count, and whether the room runs a continuous block.
func buildGapReport(snap *domain.Snapshot, assignments []domain.Assignment) map[string]any {
	gaps := solution.GapsByClassroom(snap, assignments)
	occupied := make(map[int]int)
	for _, a := range assignments {
		occupied[a.ClassroomID]++
	}

	rooms := make(map[string]any, len(occupied))
	total := 0
	for room, count := range occupied {
		g := gaps[room]
		total += g
		rooms[strconv.Itoa(room)] = map[string]any{
			"occupied":   count,
			"gaps":       g,
			"continuous": g == 0,
		}
	}
	return map[string]any{
		"rooms":      rooms,
		"total_gaps": total,
	}
}

// buildPolicySummary summarizes the solution against the scheduling
// policies: coverage, late placements, the per-slot distribution, and the
// rooms still carrying gaps.
func buildPolicySummary(snap *domain.Snapshot, assignments []domain.Assignment) map[string]any {
	distribution := make(map[string]any)
	late := 0
	for _, a := range assignments {
		key := strconv.Itoa(a.TimeslotID)
		if n, ok := distribution[key].(int); ok {
			distribution[key] = n + 1
		} else {
			distribution[key] = 1
		}
		if snap.IsLate(a.TimeslotID) || a.LatePenalized {
			late++
		}
	}

	var roomsWithGap []any
	for room, g := range solution.GapsByClassroom(snap, assignments) {
		if g > 0 {
			roomsWithGap = append(roomsWithGap, room)
		}
	}

	return map[string]any{
		"total":                    len(assignments),
		"project_count":            len(snap.Projects()),
		"late_count":               late,
		"distribution_by_timeslot": distribution,
		"classrooms_with_gap":      roomsWithGap,
	}
}
