package algorithm

import (
	"math/rand"

	"github.com/alexanderramin/viva/internal/domain"
)

// decodePermutation maps a project ordering onto a concrete solution:
// projects are placed in permutation order into the earliest cell their
// responsible instructor can attend, then juries are topped up to their
// minimum sizes. The permutation is the genotype of the evolutionary
// strategies; this decoder is their shared phenotype mapping.
func decodePermutation(snap *domain.Snapshot, perm []int) []domain.Assignment {
	projects := snap.Projects()
	g := newGrid(snap)
	out := make([]domain.Assignment, 0, len(perm))

	for _, pi := range perm {
		if pi < 0 || pi >= len(projects) {
			continue
		}
		p := projects[pi]
		room, slot, ok := g.earliestCell([]int{p.ResponsibleID})
		if !ok {
			continue
		}
		a := domain.Assignment{
			ProjectID:     p.ID,
			ClassroomID:   room,
			TimeslotID:    slot,
			InstructorIDs: []int{p.ResponsibleID},
			IsMakeup:      p.IsMakeup,
		}
		g.occupy(a)
		out = append(out, a)
	}

	completeJuries(snap, g, out)
	return out
}

// randomPermutation returns a shuffled index ordering of the snapshot's
// projects.
func randomPermutation(snap *domain.Snapshot, rng *rand.Rand) []int {
	perm := make([]int, len(snap.Projects()))
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}

// orderCrossover is the OX operator: a parent-1 window survives intact and
// the remaining positions fill in parent-2 order.
func orderCrossover(rng *rand.Rand, p1, p2 []int) []int {
	n := len(p1)
	if n == 0 {
		return nil
	}
	lo := rng.Intn(n)
	hi := lo + rng.Intn(n-lo)

	child := make([]int, n)
	used := make(map[int]bool, n)
	for i := lo; i <= hi; i++ {
		child[i] = p1[i]
		used[p1[i]] = true
	}
	fill := 0
	for _, v := range p2 {
		if used[v] {
			continue
		}
		for fill >= lo && fill <= hi {
			fill++
		}
		if fill >= n {
			break
		}
		child[fill] = v
		fill++
	}
	return child
}

// swapMutation exchanges two positions with the given per-call probability.
func swapMutation(rng *rand.Rand, perm []int, rate float64) {
	if len(perm) < 2 || rng.Float64() >= rate {
		return
	}
	i := rng.Intn(len(perm))
	j := rng.Intn(len(perm))
	perm[i], perm[j] = perm[j], perm[i]
}
