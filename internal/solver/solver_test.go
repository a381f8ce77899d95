package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beling/impartial-games/internal/cache"
	"github.com/beling/impartial-games/internal/game/chomp"
	"github.com/beling/impartial-games/internal/game/cram"
	"github.com/beling/impartial-games/internal/game/grundy"
)

func TestChompDEFLVBBRAgree(t *testing.T) {
	c := chomp.New(3, 2)

	def := NewSimple[uint64](c, cache.NewMapCache[uint64](), nil, nil, nil)
	lvb := NewSimple[uint64](c, cache.NewMapCache[uint64](), nil, nil, nil)
	br := NewSimple[uint64](c, cache.NewMapCache[uint64](), nil, nil, nil)

	wantNimber := def.NimberOfInitialDEF()
	assert.Equal(t, lvb.NimberOfInitialLVB(), wantNimber)
	assert.Equal(t, br.NimberOfInitialBR(), wantNimber)
	assert.Equal(t, br.NimberOfInitialBRAspSet(), wantNimber)
	assert.NotZero(t, wantNimber) // a 3x2 board is known winning
}

func TestCram2x2DEFLVBBRAgree(t *testing.T) {
	board := cram.New(2, 2)
	init := board.InitialPosition()

	def := NewSimple[cram.Bitboard](board, cache.NewMapCache[cram.Bitboard](), nil, nil, nil)
	lvb := NewSimple[cram.Bitboard](board, cache.NewMapCache[cram.Bitboard](), nil, nil, nil)
	br := NewSimple[cram.Bitboard](board, cache.NewMapCache[cram.Bitboard](), nil, nil, nil)

	wantNimber := def.NimberDEF(init)
	assert.Equal(t, lvb.NimberLVB(init), wantNimber)
	assert.Equal(t, br.NimberBR(init), wantNimber)
	assert.Equal(t, br.NimberBRAspSet(init), wantNimber)
	// Cram 2x2 is a known loss for the player to move (nimber 0).
	assert.Equal(t, uint8(0), wantNimber)
}

func TestCram3x2IsWinning(t *testing.T) {
	board := cram.New(3, 2)
	init := board.InitialPosition()
	def := NewSimple[cram.Bitboard](board, cache.NewMapCache[cram.Bitboard](), nil, nil, nil)
	assert.NotZero(t, def.NimberDEF(init))
}

func TestGrundyHeap7DEFLVBBRAgree(t *testing.T) {
	g := grundy.New(7)

	def := NewDecomposable[uint16, grundy.DecomposablePosition](g, cache.NewMapCache[uint16](), nil, nil, nil)
	lvb := NewDecomposable[uint16, grundy.DecomposablePosition](g, cache.NewMapCache[uint16](), nil, nil, nil)
	br := NewDecomposable[uint16, grundy.DecomposablePosition](g, cache.NewMapCache[uint16](), nil, nil, nil)

	wantNimber := def.NimberOfInitialDEF()
	assert.Equal(t, lvb.NimberOfInitialLVB(), wantNimber)
	assert.Equal(t, br.NimberOfInitialBR(), wantNimber)
	assert.Equal(t, br.NimberOfInitialBRAspSet(), wantNimber)
}

func TestSimpleStatsCollectEvents(t *testing.T) {
	c := chomp.New(2, 2)
	stats := &EventStats{}
	s := NewSimple[uint64](c, cache.NewMapCache[uint64](), nil, nil, stats)
	s.NimberOfInitialDEF()
	assert.NotZero(t, stats.Counters.NodesVisited())
}
