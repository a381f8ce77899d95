package enddb

import (
	"cmp"
	"fmt"
)

// Verifier checks a just-frozen slice against a snapshot taken before
// freezing, the Go counterpart of the source's Verifier trait (its ()
// no-op impl and CheckAll impl).
type Verifier[ISP cmp.Ordered] interface {
	// Snapshot captures whatever current's contents the verifier needs,
	// before current is frozen and pushed.
	Snapshot(current *SortedSlice[ISP]) any
	// Check compares frozen (the pushed, read-only slice) against the
	// earlier snapshot.
	Check(snapshot any, frozen *SortedSlice[ISP])
}

// NullVerifier performs no verification, the default for a build run that
// trusts add_simple_game_nimber/add_decomposable_game_nimber's result.
type NullVerifier[ISP cmp.Ordered] struct{}

func (NullVerifier[ISP]) Snapshot(*SortedSlice[ISP]) any { return nil }
func (NullVerifier[ISP]) Check(any, *SortedSlice[ISP])   {}

// CheckAllVerifier clones every (position, nimber) pair computed for a
// slice and, once the slice is frozen, asserts that every pair reads back
// unchanged. A mismatch is an invariant violation (spec's "mismatched
// verification" error kind): fatal, abort with context, so it panics
// rather than returning an error a caller might ignore.
type CheckAllVerifier[ISP cmp.Ordered] struct{}

func (CheckAllVerifier[ISP]) Snapshot(current *SortedSlice[ISP]) any {
	return current.Clone()
}

func (CheckAllVerifier[ISP]) Check(snapshot any, frozen *SortedSlice[ISP]) {
	snap := snapshot.(*SortedSlice[ISP])
	for i, p := range snap.positions {
		n, ok := frozen.GetNimber(p)
		if !ok || n != snap.nimbers[i] {
			panic(fmt.Sprintf("enddb: verification failed for in-slice position %v: wrote %d, read back %v (ok=%v)", p, snap.nimbers[i], n, ok))
		}
	}
}
