// Package chomp implements the Chomp adapter: a rectangular chocolate bar
// with a poisoned square at (0,0); a move picks any other square and eats it
// plus everything below and to the right of it.
//
// A position is a packed sequence of row lengths, one per board row, each
// stored in a fixed number of bits sized to hold the board's column count.
// Row lengths are kept non-increasing from row 0 downward; a position is
// canonical when its packed value is the smaller of its own and its
// conjugate's (transpose's), since Chomp boards and their transposes are
// strategically identical.
package chomp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/beling/impartial-games/internal/game"
)

// Chomp is a rectangular Chomp board. Position values encode row lengths, so
// different Chomp instances are not interchangeable: a position produced by
// one board size is meaningless for another.
type Chomp struct {
	cols, rows uint8
	bitsPerRow uint8
	rowMask    uint64
}

// New constructs a Chomp board of the given size. cols and rows are swapped
// if rows > cols, so the board is always stored with at least as many
// columns as rows, which keeps bitsPerRow (and thus the packed position
// width) as small as possible.
func New(cols, rows uint8) *Chomp {
	if rows > cols {
		cols, rows = rows, cols
	}
	bitsPerRow := bitsToStore(cols)
	if uint16(rows)*uint16(bitsPerRow) > 64 {
		panic("chomp: board does not fit in a 64-bit position")
	}
	return &Chomp{
		cols:       cols,
		rows:       rows,
		bitsPerRow: bitsPerRow,
		rowMask:    uint64(1)<<bitsPerRow - 1,
	}
}

// bitsToStore returns the number of bits needed to represent every integer
// in 0..=n.
func bitsToStore(n uint8) uint8 {
	need := uint32(n) + 1
	var b uint8
	for uint32(1)<<b < need {
		b++
	}
	return b
}

func (c *Chomp) row(position uint64, index uint8) uint8 {
	return uint8((position >> (index * c.bitsPerRow)) & c.rowMask)
}

func (c *Chomp) setRow(position uint64, index uint8, value uint8) uint64 {
	shift := index * c.bitsPerRow
	return (position &^ (c.rowMask << shift)) | (uint64(value&uint8(c.rowMask)) << shift)
}

// rowsCount returns the number of non-empty rows of position.
func (c *Chomp) rowsCount(position uint64) uint8 {
	if position == 0 {
		return 0
	}
	top := 63 - bits.LeadingZeros64(position)
	return uint8(top)/c.bitsPerRow + 1
}

// squaresCount returns the total number of chocolate squares on the board,
// including the poisoned one.
func (c *Chomp) squaresCount(position uint64) uint8 {
	var total uint8
	for i := uint8(0); i < c.rows; i++ {
		total += c.row(position, i)
	}
	return total
}

// transposed returns the conjugate partition of position: column j of the
// result holds the number of rows of position whose length exceeds j.
func (c *Chomp) transposed(position uint64) uint64 {
	maxLen := c.row(position, 0)
	var t uint64
	for col := uint8(0); col < maxLen; col++ {
		var count uint8
		for r := uint8(0); r < c.rows; r++ {
			if c.row(position, r) > col {
				count++
			}
		}
		t = c.setRow(t, col, count)
	}
	return t
}

// Normalized returns the canonical representative of position's equivalence
// class under transposition: the smaller, bit for bit, of position and its
// conjugate.
func (c *Chomp) Normalized(position uint64) uint64 {
	transposed := c.transposed(position)
	if transposed < position {
		return transposed
	}
	return position
}

func (c *Chomp) MovesCount(position uint64) uint16 {
	return uint16(c.squaresCount(position)) - 1
}

// TrySolveTheoretically recognizes single-bar-plus-one-extra-column boards
// (row 1 has length at most 1), whose nimber is known in closed form:
// (rowsCount-1) xor (row0-1). Every other shape returns false.
func (c *Chomp) TrySolveTheoretically(position uint64) (uint8, bool) {
	if c.row(position, 1) <= 1 {
		return (c.rowsCount(position) - 1) ^ (c.row(position, 0) - 1), true
	}
	return 0, false
}

func (c *Chomp) InitialPosition() uint64 {
	var p uint64
	for i := uint8(0); i < c.rows; i++ {
		p = c.setRow(p, i, c.cols)
	}
	return p
}

func (c *Chomp) IsInitialPositionWinning() (bool, bool) {
	return c.cols > 1 || c.rows > 1, true
}

// Successors appends every legal move's resulting (normalized) position to
// dst, skipping the square at (0,0): taking it always empties the board
// regardless of the current shape, so it is not worth exploring as a search
// branch.
func (c *Chomp) Successors(position uint64, dst []uint64) []uint64 {
	rowsCount := c.rowsCount(position)
	for r := uint8(0); r < rowsCount; r++ {
		rowLen := c.row(position, r)
		for col := uint8(0); col < rowLen; col++ {
			if r == 0 && col == 0 {
				continue
			}
			next := position
			for below := r; below < rowsCount; below++ {
				if c.row(next, below) > col {
					next = c.setRow(next, below, col)
				}
			}
			dst = append(dst, c.Normalized(next))
		}
	}
	return dst
}

// SuccessorsHeuristicallyOrdered returns the same set as Successors; Chomp's
// move generator has no intrinsic heuristic order of its own; use
// FewerSquaresFirst with a MoveSorter to order positions before recursing.
func (c *Chomp) SuccessorsHeuristicallyOrdered(position uint64, dst []uint64) []uint64 {
	return c.Successors(position, dst)
}

// FewerSquaresFirst is a game.DifficultyEvaluator that ranks positions by
// their remaining square count, so the recursion engine explores smaller
// sub-boards (which resolve fastest) before larger ones.
type FewerSquaresFirst struct {
	Game *Chomp
}

func (f FewerSquaresFirst) DifficultyOf(position uint64) uint8 {
	return f.Game.squaresCount(position)
}

var _ game.SimpleGame[uint64] = (*Chomp)(nil)
var _ game.DifficultyEvaluator[uint64, uint8] = FewerSquaresFirst{}

// WritePosition, ReadPosition and PositionSizeBytes implement
// game.PositionCodec, letting Chomp positions live in a protected
// transposition table.
func (c *Chomp) WritePosition(w io.Writer, position uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], position)
	_, err := w.Write(buf[:])
	return err
}

func (c *Chomp) ReadPosition(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (c *Chomp) PositionSizeBytes() int { return 8 }

func (c *Chomp) String() string {
	return fmt.Sprintf("Chomp%dx%d", c.cols, c.rows)
}

// PosFromRows builds a canonical position from an array of row lengths in
// non-increasing order, rows[0] being the first row's length (which must lie
// in [1, cols]). It panics if the input is malformed.
func (c *Chomp) PosFromRows(rows []uint8) uint64 {
	if len(rows) == 0 || len(rows) > int(c.rows) {
		panic("chomp: invalid row count")
	}
	if rows[0] < 1 || rows[0] > c.cols {
		panic("chomp: invalid first row length")
	}
	var p uint64
	p = c.setRow(p, 0, rows[0])
	for i := 1; i < len(rows); i++ {
		if rows[i] > rows[i-1] {
			panic("chomp: rows must be non-increasing")
		}
		p = c.setRow(p, uint8(i), rows[i])
	}
	return c.Normalized(p)
}

// PosToRows is the inverse of PosFromRows, for printing and tests.
func (c *Chomp) PosToRows(position uint64) []uint8 {
	n := c.rowsCount(position)
	rows := make([]uint8, n)
	for i := uint8(0); i < n; i++ {
		rows[i] = c.row(position, i)
	}
	return rows
}
