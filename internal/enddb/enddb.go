package enddb

import (
	"cmp"

	"github.com/beling/impartial-games/internal/cache"
)

// EndDB is the read side of an end-game database: a sequence of frozen
// slices plus the provider that routes a position to the slice (and
// in-slice position) that may hold its nimber. It implements
// cache.Provider so a solver can use it as the EndDB field of
// solver.Simple/solver.Decomposable exactly like any other nimber cache.
type EndDB[P comparable, ISP cmp.Ordered] struct {
	Provider SliceProvider[P, ISP]
	Slices   []*SortedSlice[ISP]
}

// New returns an empty end database addressed by provider.
func New[P comparable, ISP cmp.Ordered](provider SliceProvider[P, ISP]) *EndDB[P, ISP] {
	return &EndDB[P, ISP]{Provider: provider}
}

// GetNimber looks up position's nimber in the slice its provider routes it
// to. Unlike a Builder's in-progress slice, a frozen slice is never
// extended on a miss.
func (e *EndDB[P, ISP]) GetNimber(position P) (uint8, bool) {
	idx, ok := e.Provider.PositionToSlice(position)
	if !ok || idx >= len(e.Slices) {
		return 0, false
	}
	return e.Slices[idx].GetNimber(e.Provider.Strip(position))
}

// GetNimberAndSelfOrganize satisfies cache.Provider; reads never reorganize
// a frozen end-game database.
func (e *EndDB[P, ISP]) GetNimberAndSelfOrganize(position P) (uint8, bool) {
	return e.GetNimber(position)
}

// SizeBytes returns the approximate total on-disk size of every slice
// under codec.
func (e *EndDB[P, ISP]) SizeBytes(codec cache.PositionCodec[ISP]) int {
	total := 0
	for _, s := range e.Slices {
		total += 4 + s.Len()*(codec.PositionSizeBytes()+1)
	}
	return total
}

func (e *EndDB[P, ISP]) pushSlice(s *SortedSlice[ISP]) {
	e.Slices = append(e.Slices, s)
	e.Provider.SlicePushed(len(e.Slices) - 1)
}
