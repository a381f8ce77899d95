package enddb

import "cmp"

// SliceProvider partitions a game's position space into slices, in the
// order a Builder fills them. P is the game's full position type; ISP
// ("in-slice position") is the striped-down representation a slice actually
// stores, distinguishing only positions that land in the same slice.
type SliceProvider[P comparable, ISP cmp.Ordered] interface {
	// PositionToSlice returns the index of the slice containing position,
	// or ok=false if position isn't covered by any slice.
	PositionToSlice(position P) (sliceIndex int, ok bool)

	// Strip reduces position to the representation its slice stores it
	// under. EndDB.GetNimber only calls it for a position PositionToSlice
	// accepted; a Builder strips every position it visits.
	Strip(position P) ISP

	// SliceContent returns every position belonging to slice sliceIndex, or
	// ok=false if that slice (and every later one) doesn't exist yet.
	SliceContent(sliceIndex int) (positions []P, ok bool)

	// SlicePushed is called after a slice already built or read from file
	// is appended, so a provider can narrow the range it still exposes.
	SlicePushed(sliceIndex int)

	// IsExhaustive reports whether a slice's positions only ever reference
	// successors already resolvable from slices at or before their own.
	IsExhaustive() bool
}

// RangeSliceProvider partitions the positions of a ~uint64-keyed game
// (Chomp and Cram both key positions this way) into slices of 1<<SliceBits
// consecutive values, filtering out positions Accept rejects — the Go
// generalization of Cram's fixed 32-bit-per-slice SliceIterator/
// position_to_slice/strip trio, parameterized by SliceBits instead of a
// hardcoded 32 so it also serves smaller games without wasting slices.
type RangeSliceProvider[P ~uint64] struct {
	// SliceBits is the number of low bits of a position that index within
	// its slice; the high bits select the slice.
	SliceBits uint
	// Limit is one past the largest position ever exposed (e.g. the
	// game's initial position, since Chomp/Cram encode smaller boards as
	// smaller integers).
	Limit P
	// Accept reports whether position should be included, e.g. Cram's
	// is_normalized_component. A nil Accept includes every position in
	// range.
	Accept func(P) bool
	// pushedUpto records one past the last position of the highest slice
	// pushed so far; PositionToSlice and SliceContent do not consult it.
	pushedUpto P
}

func (r *RangeSliceProvider[P]) sliceSize() uint64 { return uint64(1) << r.SliceBits }

func (r *RangeSliceProvider[P]) PositionToSlice(position P) (int, bool) {
	if position >= r.Limit {
		return 0, false
	}
	return int(uint64(position) >> r.SliceBits), true
}

func (r *RangeSliceProvider[P]) Strip(position P) uint32 {
	return uint32(uint64(position) & (r.sliceSize() - 1))
}

func (r *RangeSliceProvider[P]) SliceContent(sliceIndex int) ([]P, bool) {
	start := uint64(sliceIndex) * r.sliceSize()
	if start >= uint64(r.Limit) {
		return nil, false
	}
	end := start + r.sliceSize()
	if end > uint64(r.Limit) {
		end = uint64(r.Limit)
	}
	var out []P
	for v := start; v < end; v++ {
		p := P(v)
		if r.Accept == nil || r.Accept(p) {
			out = append(out, p)
		}
	}
	return out, true
}

func (r *RangeSliceProvider[P]) SlicePushed(sliceIndex int) {
	next := P((uint64(sliceIndex) + 1) * r.sliceSize())
	if next > r.pushedUpto {
		r.pushedUpto = next
	}
}

func (r *RangeSliceProvider[P]) IsExhaustive() bool { return true }
