package fitness

import (
	"math"
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/solution"
)

// Score is the normalized quality of one solution: a clamped 0–100 total
// plus the per-axis sub-scores it was built from.
type Score struct {
	Total float64

	SlotReward       float64
	Coverage         float64
	GapPenalty       float64
	DuplicatePenalty float64
	LoadBalance      float64
	LateSlotPenalty  float64

	// Advisory axes: classroom-switch and role-compliance contribute a
	// fixed 2.5% each; session-minimization is reported only.
	ClassroomSwitch     float64
	RoleCompliance      float64
	SessionMinimization float64
}

// AxisMap returns the sub-scores keyed for JSON reporting.
func (s Score) AxisMap() map[string]float64 {
	return map[string]float64{
		"slot_reward":          s.SlotReward,
		"coverage":             s.Coverage,
		"gap_penalty":          s.GapPenalty,
		"duplicate_penalty":    s.DuplicatePenalty,
		"load_balance":         s.LoadBalance,
		"late_slot_penalty":    s.LateSlotPenalty,
		"classroom_switch":     s.ClassroomSwitch,
		"role_compliance":      s.RoleCompliance,
		"session_minimization": s.SessionMinimization,
	}
}

// Evaluate scores a solution against the snapshot with the given weights.
func Evaluate(snap *domain.Snapshot, assignments []domain.Assignment, w Weights) Score {
	s := Score{
		SlotReward:          slotRewardAxis(snap, assignments),
		Coverage:            coverageAxis(snap, assignments),
		GapPenalty:          gapAxis(snap, assignments),
		DuplicatePenalty:    duplicateAxis(assignments),
		LoadBalance:         loadBalanceAxis(snap, assignments),
		LateSlotPenalty:     lateAxis(snap, assignments),
		ClassroomSwitch:     classroomSwitchAxis(assignments),
		RoleCompliance:      roleComplianceAxis(snap, assignments),
		SessionMinimization: sessionMinimizationAxis(snap, assignments),
	}

	total := w.SlotReward*s.SlotReward +
		w.Coverage*s.Coverage +
		w.GapPenalty*s.GapPenalty +
		w.DuplicatePenalty*s.DuplicatePenalty +
		w.LoadBalance*s.LoadBalance +
		w.LateSlotPenalty*s.LateSlotPenalty +
		classroomSwitchShare*s.ClassroomSwitch +
		roleComplianceShare*s.RoleCompliance

	s.Total = clampScore(total)
	return s
}

// EvaluateCategory scores with a category's default weight family.
func EvaluateCategory(snap *domain.Snapshot, assignments []domain.Assignment, cat Category) Score {
	return Evaluate(snap, assignments, WeightsFor(cat))
}

// slotRewardAxis sums the reward-table entries for the occupied slots. Any
// late assignment drives the raw total negative and zeroes the axis.
// Otherwise the total normalizes linearly between count×400 (minimum
// acceptable) and count×1000 (all sessions at 09:00).
func slotRewardAxis(snap *domain.Snapshot, assignments []domain.Assignment) float64 {
	if len(assignments) == 0 {
		return 0
	}
	raw := 0
	for _, a := range assignments {
		slot, ok := snap.TimeslotByID(a.TimeslotID)
		if !ok {
			return 0
		}
		raw += slot.Reward()
	}
	if raw < 0 {
		return 0
	}
	minRaw := len(assignments) * domain.MinSlotReward
	maxRaw := len(assignments) * domain.MaxSlotReward
	if maxRaw == minRaw {
		return 100
	}
	return clampScore(float64(raw-minRaw) / float64(maxRaw-minRaw) * 100)
}

// coverageAxis is binary: 100 iff every project in the snapshot is
// scheduled exactly once.
func coverageAxis(snap *domain.Snapshot, assignments []domain.Assignment) float64 {
	seen := make(map[int]int, len(assignments))
	for _, a := range assignments {
		seen[a.ProjectID]++
	}
	for _, p := range snap.Projects() {
		if seen[p.ID] != 1 {
			return 0
		}
	}
	return 100
}

func gapAxis(snap *domain.Snapshot, assignments []domain.Assignment) float64 {
	if solution.TotalGaps(snap, assignments) == 0 {
		return 100
	}
	return 0
}

func duplicateAxis(assignments []domain.Assignment) float64 {
	seen := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.ProjectID] {
			return 0
		}
		seen[a.ProjectID] = true
	}
	return 100
}

// loadBalanceAxis gives full marks when every instructor sits on at least
// one jury and no load deviates from the mean by more than one session.
// Otherwise it deducts 15 per uninvolved instructor and 10 per unit of
// deviation beyond the ±1 tolerance, floored at 0.
func loadBalanceAxis(snap *domain.Snapshot, assignments []domain.Assignment) float64 {
	instructors := snap.Instructors()
	if len(instructors) == 0 {
		return 0
	}
	loads := make(map[int]int, len(instructors))
	total := 0
	for _, a := range assignments {
		for _, ins := range a.InstructorIDs {
			loads[ins]++
			total++
		}
	}
	mean := float64(total) / float64(len(instructors))

	uninvolved := 0
	excess := 0.0
	balanced := true
	for _, ins := range instructors {
		load := loads[ins.ID]
		if load == 0 {
			uninvolved++
			balanced = false
		}
		dev := math.Abs(float64(load) - mean)
		if dev > 1 {
			excess += dev - 1
			balanced = false
		}
	}
	if balanced && uninvolved == 0 {
		return 100
	}
	return clampScore(100 - 15*float64(uninvolved) - 10*excess)
}

func lateAxis(snap *domain.Snapshot, assignments []domain.Assignment) float64 {
	late := solution.CountLate(snap, assignments)
	if late == 0 {
		return 100
	}
	return clampScore(100 - 50*float64(late))
}

// classroomSwitchAxis penalizes instructors that hop between classrooms:
// 10 points per distinct extra room across an instructor's assignments.
func classroomSwitchAxis(assignments []domain.Assignment) float64 {
	rooms := make(map[int]map[int]bool)
	for _, a := range assignments {
		for _, ins := range a.InstructorIDs {
			if rooms[ins] == nil {
				rooms[ins] = make(map[int]bool)
			}
			rooms[ins][a.ClassroomID] = true
		}
	}
	switches := 0
	for _, set := range rooms {
		switches += len(set) - 1
	}
	return clampScore(100 - 10*float64(switches))
}

// roleComplianceAxis counts assignments violating the jury rules:
// responsible-first, no duplicate jurors, and minimum jury size by type.
func roleComplianceAxis(snap *domain.Snapshot, assignments []domain.Assignment) float64 {
	violations := 0
	for _, a := range assignments {
		if !juryWellFormed(snap, a) {
			violations++
		}
	}
	if violations == 0 {
		return 100
	}
	return clampScore(100 - 20*float64(violations))
}

func juryWellFormed(snap *domain.Snapshot, a domain.Assignment) bool {
	p, ok := snap.ProjectByID(a.ProjectID)
	if !ok {
		return false
	}
	if len(a.InstructorIDs) < p.MinJurySize() {
		return false
	}
	if a.InstructorIDs[0] != p.ResponsibleID {
		return false
	}
	seen := make(map[int]bool, len(a.InstructorIDs))
	for _, ins := range a.InstructorIDs {
		if seen[ins] {
			return false
		}
		seen[ins] = true
	}
	return true
}

// sessionMinimizationAxis rewards instructors whose jury duty forms few
// contiguous blocks: 10 points off per extra block.
func sessionMinimizationAxis(snap *domain.Snapshot, assignments []domain.Assignment) float64 {
	indices := make(map[int][]int)
	for _, a := range assignments {
		idx := snap.SlotIndex(a.TimeslotID)
		if idx < 0 {
			continue
		}
		for _, ins := range a.InstructorIDs {
			indices[ins] = append(indices[ins], idx)
		}
	}
	extra := 0
	for _, list := range indices {
		extra += contiguousBlocks(list) - 1
	}
	return clampScore(100 - 10*float64(extra))
}

func contiguousBlocks(indices []int) int {
	if len(indices) == 0 {
		return 1
	}
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	blocks := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] > 1 {
			blocks++
		}
	}
	return blocks
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
