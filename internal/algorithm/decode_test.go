package algorithm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/viva/internal/solution"
)

func TestDecodePermutation_PlacesEveryProjectConflictFree(t *testing.T) {
	snap := constructSnapshot()
	perm := []int{4, 2, 0, 3, 1}

	out := decodePermutation(snap, perm)
	require.Len(t, out, len(snap.Projects()))
	assert.True(t, solution.DetectConflicts(out).None())

	// Permutation order decides who claims the earliest cell.
	assert.Equal(t, snap.Projects()[4].ID, out[0].ProjectID)
	assert.Equal(t, 0, snap.SlotIndex(out[0].TimeslotID))
}

func TestDecodePermutation_IgnoresOutOfRangeGenes(t *testing.T) {
	snap := constructSnapshot()
	out := decodePermutation(snap, []int{-1, 0, 99})
	assert.Len(t, out, 1)
}

func TestRandomPermutation_IsAPermutation(t *testing.T) {
	snap := constructSnapshot()
	perm := randomPermutation(snap, rand.New(rand.NewSource(9)))

	require.Len(t, perm, len(snap.Projects()))
	seen := make(map[int]bool)
	for _, v := range perm {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, len(perm))
		assert.False(t, seen[v])
		seen[v] = true
	}
}

func TestOrderCrossover_PreservesElements(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	p1 := []int{0, 1, 2, 3, 4, 5}
	p2 := []int{5, 4, 3, 2, 1, 0}

	for i := 0; i < 20; i++ {
		child := orderCrossover(rng, p1, p2)
		assert.ElementsMatch(t, p1, child)
	}
}

func TestOrderCrossover_EmptyParents(t *testing.T) {
	assert.Nil(t, orderCrossover(rand.New(rand.NewSource(1)), nil, nil))
}

func TestSwapMutation_RateZeroIsNoOp(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	perm := []int{0, 1, 2, 3}
	swapMutation(rng, perm, 0)
	assert.Equal(t, []int{0, 1, 2, 3}, perm)
}

func TestSwapMutation_RateOneKeepsElements(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	perm := []int{0, 1, 2, 3}
	swapMutation(rng, perm, 1.0)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, perm)
}
