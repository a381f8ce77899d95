// Package enddb builds and reads end-game databases: precomputed nimber
// tables for positions near the end of a game, addressed through a
// SliceProvider that partitions the position space into slices small enough
// to build (and freeze) one at a time.
package enddb

import (
	"cmp"
	"encoding/binary"
	"io"
	"sort"

	"github.com/beling/impartial-games/internal/cache"
)

// SortedSlice maps a slice's striped in-slice positions (ISP) to nimbers
// using two parallel sorted slices, effective because builder.go always
// appends positions in ascending order during a slice build. It serves
// double duty as both the uncompressed, in-progress slice a builder writes
// into and the frozen, read-only slice a solver queries afterward — this
// repo has no minimal-perfect-hash compression library in its dependency
// pack, so a slice's on-disk and in-memory representations are the same
// sorted-array form.
type SortedSlice[ISP cmp.Ordered] struct {
	positions []ISP
	nimbers   []uint8
}

// NewSortedSlice returns an empty slice ready to accept StoreNimber calls.
func NewSortedSlice[ISP cmp.Ordered]() *SortedSlice[ISP] {
	return &SortedSlice[ISP]{}
}

// GetNimber returns the nimber stored for p, if any.
func (s *SortedSlice[ISP]) GetNimber(p ISP) (uint8, bool) {
	i := sort.Search(len(s.positions), func(i int) bool { return s.positions[i] >= p })
	if i < len(s.positions) && s.positions[i] == p {
		return s.nimbers[i], true
	}
	return 0, false
}

// GetNimberAndSelfOrganize satisfies cache.Provider; a frozen slice never
// reorganizes on read.
func (s *SortedSlice[ISP]) GetNimberAndSelfOrganize(p ISP) (uint8, bool) { return s.GetNimber(p) }

// StoreNimber records the nimber of p, keeping positions sorted. Storing an
// already-present position is a no-op, matching the source's binary-search
// insert that only writes on a confirmed miss.
func (s *SortedSlice[ISP]) StoreNimber(p ISP, nimber uint8) {
	n := len(s.positions)
	if n == 0 || s.positions[n-1] < p {
		s.positions = append(s.positions, p)
		s.nimbers = append(s.nimbers, nimber)
		return
	}
	i := sort.Search(n, func(i int) bool { return s.positions[i] >= p })
	if i < n && s.positions[i] == p {
		return
	}
	var zeroISP ISP
	s.positions = append(s.positions, zeroISP)
	copy(s.positions[i+1:], s.positions[i:])
	s.positions[i] = p

	s.nimbers = append(s.nimbers, 0)
	copy(s.nimbers[i+1:], s.nimbers[i:])
	s.nimbers[i] = nimber
}

// Len returns the number of positions the slice holds.
func (s *SortedSlice[ISP]) Len() int { return len(s.positions) }

// Clone returns an independent copy, used by CheckAllVerifier to snapshot a
// slice before it is frozen and pushed.
func (s *SortedSlice[ISP]) Clone() *SortedSlice[ISP] {
	return &SortedSlice[ISP]{
		positions: append([]ISP(nil), s.positions...),
		nimbers:   append([]uint8(nil), s.nimbers...),
	}
}

// SizeBytes returns the slice's approximate on-disk size under codec: a
// 4-byte count followed by (position, nimber) pairs.
func (s *SortedSlice[ISP]) SizeBytes(codec cache.PositionCodec[ISP]) int {
	return 4 + len(s.positions)*(codec.PositionSizeBytes()+1)
}

// WriteSortedSlice writes s to w as a count followed by (position, nimber)
// pairs, each position encoded by codec and each nimber a single byte — the
// same record shape cache.Protected uses for its backup file (spec's slice
// file format only requires that write followed by read recovers an
// equivalent map).
func WriteSortedSlice[ISP cmp.Ordered](w io.Writer, codec cache.PositionCodec[ISP], s *SortedSlice[ISP]) error {
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(s.positions)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return err
	}
	for i, p := range s.positions {
		if err := codec.WritePosition(w, p); err != nil {
			return err
		}
		if _, err := w.Write([]byte{s.nimbers[i]}); err != nil {
			return err
		}
	}
	return nil
}

// ReadSortedSlice reads back a slice written by WriteSortedSlice.
func ReadSortedSlice[ISP cmp.Ordered](r io.Reader, codec cache.PositionCodec[ISP]) (*SortedSlice[ISP], error) {
	var countBuf [4]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, err
	}
	count := binary.BigEndian.Uint32(countBuf[:])
	s := &SortedSlice[ISP]{positions: make([]ISP, count), nimbers: make([]uint8, count)}
	for i := uint32(0); i < count; i++ {
		p, err := codec.ReadPosition(r)
		if err != nil {
			return nil, err
		}
		var nbuf [1]byte
		if _, err := io.ReadFull(r, nbuf[:]); err != nil {
			return nil, err
		}
		s.positions[i] = p
		s.nimbers[i] = nbuf[0]
	}
	return s, nil
}
