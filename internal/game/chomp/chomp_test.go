package chomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChomp1x1(t *testing.T) {
	c := New(1, 1)
	init := c.InitialPosition()
	assert.Equal(t, uint64(1), init)
	assert.Equal(t, uint8(1), c.rowsCount(init))
	assert.Equal(t, uint8(1), c.squaresCount(init))
	assert.Equal(t, uint16(0), c.MovesCount(init))
	assert.Empty(t, c.Successors(init, nil))

	winning, known := c.IsInitialPositionWinning()
	require.True(t, known)
	assert.False(t, winning) // 1x1 is a single poisoned square: first player loses
}

func TestChomp3x2(t *testing.T) {
	c := New(3, 2)
	assert.Equal(t, New(2, 3).bitsPerRow, c.bitsPerRow) // cols/rows swapped to the same canonical shape

	init := c.InitialPosition()
	assert.Equal(t, c.PosFromRows([]uint8{3, 3}), init)
	assert.Equal(t, uint8(2), c.rowsCount(init))
	assert.Equal(t, uint8(6), c.squaresCount(init))
	assert.Equal(t, uint16(5), c.MovesCount(init))

	successors := c.Successors(init, nil)
	expected := []uint64{
		c.PosFromRows([]uint8{3}),
		c.PosFromRows([]uint8{3, 1}),
		c.PosFromRows([]uint8{2}),
		c.PosFromRows([]uint8{3, 2}),
		c.PosFromRows([]uint8{2, 2}),
	}
	assert.ElementsMatch(t, expected, successors)

	winning, known := c.IsInitialPositionWinning()
	require.True(t, known)
	assert.True(t, winning)
}

func TestChompTheoreticalSolution(t *testing.T) {
	c := New(4, 3)
	singleBar := c.PosFromRows([]uint8{4})
	n, ok := c.TrySolveTheoretically(singleBar)
	require.True(t, ok)
	assert.Equal(t, uint8(3), n) // single row of 4: nimber = row0-1 = 3

	withColumn := c.PosFromRows([]uint8{4, 1})
	n, ok = c.TrySolveTheoretically(withColumn)
	require.True(t, ok)
	assert.Equal(t, uint8(2), n) // rowsCount-1=1, row0-1=3, 1^3=2
}

func TestChompNormalizedIsIdempotent(t *testing.T) {
	c := New(3, 2)
	p := c.PosFromRows([]uint8{2, 2})
	assert.Equal(t, p, c.Normalized(p))
}
