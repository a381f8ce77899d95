// Package game defines the interfaces every supported game implements, plus
// the adapters for the concrete games (chomp, cram, grundy) the command-line
// tools expose.
package game

import "github.com/beling/impartial-games/internal/cache"

// Game is implemented by every game understood by the solver. P is the
// concrete position representation, an adapter-specific value small enough
// to use as a map key (usually an unsigned integer or a small array).
type Game[P comparable] interface {
	// MovesCount returns the number of moves available in position. The
	// recursion engine uses this to choose how wide a nimber set the
	// potential-nimber-set (BR) strategy needs for the node.
	MovesCount(position P) uint16

	// TrySolveTheoretically attempts to return a closed-form nimber for
	// position without search (e.g. a known formula for a whole family of
	// positions). Adapters with no such shortcut always return (0, false).
	TrySolveTheoretically(position P) (nimber uint8, ok bool)

	// InitialPosition returns the position the solver starts searching from.
	InitialPosition() P

	// IsInitialPositionWinning reports the outcome of InitialPosition if it
	// is known without search; the bool result is false when unknown.
	IsInitialPositionWinning() (winning bool, known bool)
}

// SimpleGame is implemented by games whose positions never decompose into
// independent components, so no Sprague-Grundy XOR combination is needed.
type SimpleGame[P comparable] interface {
	Game[P]

	// Successors appends the successors of position to dst and returns the
	// extended slice. Callers on the recursion hot path reuse dst across
	// sibling calls to avoid per-node allocation.
	Successors(position P, dst []P) []P

	// SuccessorsHeuristicallyOrdered behaves like Successors but orders the
	// result so that branches likely to resolve (or prune) the search
	// fastest come first.
	SuccessorsHeuristicallyOrdered(position P, dst []P) []P
}

// DecomposableGame is implemented by games whose positions may split into
// independent components whose nimbers combine by XOR. P is a single
// (indivisible) component, as used by Game[P] for component-level lookups
// and caching; DP is the type of a move's result, which may bundle more
// than one new component (e.g. splitting one heap into two).
type DecomposableGame[P comparable, DP any] interface {
	Game[P]

	// Successors appends, to dst, the decomposed result of every move
	// available from the single component position.
	Successors(position P, dst []DP) []DP

	// SuccessorsHeuristicallyOrdered behaves like Successors but orders the
	// result so that branches likely to resolve (or prune) the search
	// fastest come first.
	SuccessorsHeuristicallyOrdered(position P, dst []DP) []DP

	// Decompose appends position's independent, live components to dst. A
	// non-decomposable move yields exactly one component.
	Decompose(position DP, dst []P) []P
}

// PositionCodec is implemented by games whose positions can be serialized to
// a fixed-size binary encoding, making them eligible for storage in a
// cache.Protected transposition table.
type PositionCodec[P comparable] = cache.PositionCodec[P]

// TheoreticalSolutions adapts a Game's TrySolveTheoretically method into a
// cache.Provider, so it can sit at the front of a solver's fallback chain
// the same way any other nimber cache does.
type TheoreticalSolutions[P comparable] struct {
	Game Game[P]
}

func (t TheoreticalSolutions[P]) GetNimber(position P) (uint8, bool) {
	return t.Game.TrySolveTheoretically(position)
}

func (t TheoreticalSolutions[P]) GetNimberAndSelfOrganize(position P) (uint8, bool) {
	return t.Game.TrySolveTheoretically(position)
}
