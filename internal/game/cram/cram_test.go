package cram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCram2x2InitialMoves(t *testing.T) {
	c := New(2, 2)
	init := c.InitialPosition()
	assert.Equal(t, Bitboard(0), init)
	// 4 squares, every adjacent pair is a legal domino: 2 horizontal rows + 2 vertical columns.
	assert.Equal(t, uint16(4), c.MovesCount(init))
	assert.Len(t, c.Successors(init, nil), 4)
}

func TestCram2x2TerminalPosition(t *testing.T) {
	c := New(2, 2)
	full := c.fullMask
	assert.Equal(t, uint16(0), c.MovesCount(full))
	assert.Empty(t, c.Successors(full, nil))
}

func TestCramNoTheoreticalShortcut(t *testing.T) {
	c := New(3, 2)
	_, ok := c.TrySolveTheoretically(c.InitialPosition())
	assert.False(t, ok)
}

func TestCramSuccessorsStayWithinBoard(t *testing.T) {
	c := New(3, 2)
	for _, succ := range c.Successors(c.InitialPosition(), nil) {
		assert.Equal(t, succ, succ&c.fullMask)
	}
}
