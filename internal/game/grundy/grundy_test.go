package grundy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func decomposeAll(g *Game, moves []DecomposablePosition) [][]uint16 {
	result := make([][]uint16, len(moves))
	for i, m := range moves {
		result[i] = g.Decompose(m, nil)
	}
	return result
}

func TestGrundyZeroHeapHasNoSplits(t *testing.T) {
	g := New(0)
	assert.Equal(t, uint16(0), g.InitialPosition())
	assert.Equal(t, uint16(0), g.MovesCount(0))
	assert.Empty(t, g.Successors(0, nil))
}

func TestGrundyHeap5(t *testing.T) {
	g := New(5)
	assert.Equal(t, uint16(3), g.MovesCount(5))
	moves := g.Successors(5, nil)
	assert.Equal(t, [][]uint16{{4}, {3}, {1, 2}}, decomposeAll(g, moves))
}

// TestGrundyHeap7MatchesSpecifiedSuccessors is the exact scenario named by
// the governing specification: splitting a heap of 7 yields the single
// heaps 6 and 5, plus the two-heap splits (1,4) and (2,3).
func TestGrundyHeap7MatchesSpecifiedSuccessors(t *testing.T) {
	g := New(7)
	assert.Equal(t, uint16(7), g.InitialPosition())
	assert.Equal(t, uint16(4), g.MovesCount(7))

	moves := g.Successors(7, nil)
	assert.Len(t, moves, 4)
	assert.Equal(t, [][]uint16{{6}, {5}, {1, 4}, {2, 3}}, decomposeAll(g, moves))
}

func TestGrundyHeap8(t *testing.T) {
	g := New(8)
	assert.Equal(t, uint16(4), g.MovesCount(8))
	moves := g.Successors(8, nil)
	assert.Equal(t, [][]uint16{{7}, {6}, {1, 5}, {2, 4}}, decomposeAll(g, moves))
}
