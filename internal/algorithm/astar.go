package algorithm

import (
	"container/heap"
	"context"
	"sort"

	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/fitness"
	"github.com/alexanderramin/viva/internal/solution"
)

// astarStrategy runs best-first search over partial schedules. The path
// cost g is the reward collected so far, the heuristic h grants every
// remaining project the maximum slot reward, which is admissible, so the
// first fully expanded goal is reward-optimal within the explored beam.
// The open list is capped to keep memory bounded on large snapshots.
type astarStrategy struct {
	base
}

func init() {
	register(Descriptor{
		Tag:         "a-star",
		Category:    fitness.CategorySearch,
		Description: "best-first search with an admissible slot-reward heuristic",
		Params: []ParamSpec{
			seedSpec,
			{Name: "beam_width", Type: ParamInt, Default: 400, Description: "open list cap"},
			{Name: "max_expansions", Type: ParamInt, Default: 20000, Description: "node expansion limit"},
		},
		New: func() Strategy { return &astarStrategy{base: newBase("a-star", fitness.CategorySearch)} },
	})
}

type astarNode struct {
	depth      int
	reward     int
	f          int
	placements []domain.Assignment
}

type astarOpen []*astarNode

func (o astarOpen) Len() int           { return len(o) }
func (o astarOpen) Less(i, j int) bool { return o[i].f > o[j].f }
func (o astarOpen) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o *astarOpen) Push(x any)        { *o = append(*o, x.(*astarNode)) }
func (o *astarOpen) Pop() any {
	old := *o
	n := len(old)
	node := old[n-1]
	*o = old[:n-1]
	return node
}

func (s *astarStrategy) Optimize(ctx context.Context) Result {
	elapsed := startTimer()
	beam := s.params.Int("beam_width", 400)
	maxExpansions := s.params.Int("max_expansions", 20000)
	if beam < 8 {
		beam = 8
	}

	projects := orderByGroupSize(s.snap)
	slots := s.snap.SortedTimeslots()
	rooms := s.snap.ClassroomIDs()
	n := len(projects)

	open := &astarOpen{{f: n * domain.MaxSlotReward}}
	heap.Init(open)

	var best *astarNode
	expansions := 0

	for open.Len() > 0 && expansions < maxExpansions {
		if ctx.Err() != nil {
			break
		}
		node := heap.Pop(open).(*astarNode)
		expansions++

		if best == nil || len(node.placements) > len(best.placements) ||
			(len(node.placements) == len(best.placements) && node.reward > best.reward) {
			best = node
		}
		if node.depth == n {
			if len(node.placements) == n {
				break // admissible h: first complete goal popped is optimal
			}
			continue
		}

		p := projects[node.depth]
		g := gridFrom(s.snap, node.placements)
		h := (n - node.depth - 1) * domain.MaxSlotReward

		for _, slot := range slots {
			if !g.instructorFree(p.ResponsibleID, slot.ID) {
				continue
			}
			for _, room := range rooms {
				if !g.cellFree(room, slot.ID) {
					continue
				}
				a := domain.Assignment{
					ProjectID:     p.ID,
					ClassroomID:   room,
					TimeslotID:    slot.ID,
					InstructorIDs: []int{p.ResponsibleID},
					IsMakeup:      p.IsMakeup,
				}
				child := &astarNode{
					depth:      node.depth + 1,
					reward:     node.reward + slot.Reward(),
					placements: append(domain.CloneAssignments(node.placements), a),
				}
				child.f = child.reward + h
				heap.Push(open, child)
				break // rooms are symmetric at a fixed slot
			}
		}
		// Leaving the project out keeps unreachable instances solvable.
		skip := &astarNode{
			depth:      node.depth + 1,
			reward:     node.reward,
			placements: node.placements,
		}
		skip.f = skip.reward + h
		heap.Push(open, skip)

		if open.Len() > beam {
			s.trimOpen(open, beam)
		}
	}

	if best == nil || len(best.placements) == 0 {
		return s.failure(StatusInfeasible, elapsed(), map[string]any{"expansions": expansions})
	}

	assignments := domain.CloneAssignments(best.placements)
	completeJuries(s.snap, gridFrom(s.snap, assignments), assignments)
	assignments, _, flagged := solution.RelocateLate(s.snap, assignments)

	return s.result(assignments, elapsed(), map[string]any{
		"expansions":   expansions,
		"objective":    best.reward,
		"late_flagged": flagged,
	})
}

// trimOpen drops the worst-f tail of the open list.
func (s *astarStrategy) trimOpen(open *astarOpen, beam int) {
	nodes := append([]*astarNode(nil), (*open)...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].f > nodes[j].f })
	*open = nodes[:beam]
	heap.Init(open)
}
