package game

import (
	"cmp"
	"sort"
)

// ComponentsInfo describes the span of one decomposed move within a flat
// slice of components: components[First:First+Len] are the move's
// constituent positions still needing a nimber.
type ComponentsInfo struct {
	First int
	Len   int
}

// MoveSorter orders a SimpleGame's freshly generated moves from easiest to
// hardest, in place, before the recursion engine explores them. Putting easy
// (quickly resolved) moves first tends to find a mex-completing sibling
// sooner and prune harder siblings via transposition hits.
type MoveSorter[P comparable] interface {
	SortMoves(moves []P)
}

// DecomposableMoveSorter is the DecomposableGame counterpart of MoveSorter:
// it orders whole moves (each a span of possibly several independent
// components) from easiest to hardest, and additionally rotates the hardest
// component of each move to the front of its span, since refuting that
// component first can prune the rest without evaluating them.
type DecomposableMoveSorter[P comparable] interface {
	SortMoves(moves []ComponentsInfo, components []P)
}

// PreserveGeneratedOrder is a MoveSorter that leaves moves exactly as the
// game's Successors method produced them.
type PreserveGeneratedOrder[P comparable] struct{}

func (PreserveGeneratedOrder[P]) SortMoves(moves []P) {}

// PreserveGeneratedOrderDecomposable is the DecomposableMoveSorter
// counterpart of PreserveGeneratedOrder.
type PreserveGeneratedOrderDecomposable[P comparable] struct{}

func (PreserveGeneratedOrderDecomposable[P]) SortMoves(moves []ComponentsInfo, components []P) {}

// DifficultyEvaluator estimates how hard a position is to resolve, with D
// ordered so lower means easier. Implementations usually estimate branching
// factor or remaining-move-count rather than compute anything exact.
type DifficultyEvaluator[P comparable, D cmp.Ordered] interface {
	DifficultyOf(position P) D
}

// ByDifficulty is a MoveSorter that orders moves by an arbitrary
// DifficultyEvaluator's estimate, stably (ties preserve generation order).
type ByDifficulty[P comparable, D cmp.Ordered] struct {
	Eval DifficultyEvaluator[P, D]
}

func (b ByDifficulty[P, D]) SortMoves(moves []P) {
	keys := make([]D, len(moves))
	for i, m := range moves {
		keys[i] = b.Eval.DifficultyOf(m)
	}
	sortByKeys(moves, keys)
}

// ByDifficultyDecomposable is the DecomposableMoveSorter counterpart of
// ByDifficulty. A move's difficulty is the sum of its components'
// difficulties (0 for a move with no components); the hardest component of
// each move is swapped to the front of its span as a side effect.
type ByDifficultyDecomposable[P comparable, D cmp.Ordered] struct {
	Eval DifficultyEvaluator[P, D]
}

func (b ByDifficultyDecomposable[P, D]) SortMoves(moves []ComponentsInfo, components []P) {
	totals := make([]D, len(moves))
	for i, m := range moves {
		switch m.Len {
		case 0:
			var zero D
			totals[i] = zero
		case 1:
			totals[i] = b.Eval.DifficultyOf(components[m.First])
		default:
			hardest := b.Eval.DifficultyOf(components[m.First])
			hardestAt := m.First
			total := hardest
			for k := m.First + 1; k < m.First+m.Len; k++ {
				d := b.Eval.DifficultyOf(components[k])
				total += d
				if d > hardest {
					hardest = d
					hardestAt = k
				}
			}
			if hardestAt != m.First {
				components[m.First], components[hardestAt] = components[hardestAt], components[m.First]
			}
			totals[i] = total
		}
	}
	sortByKeys(moves, totals)
}

// sortByKeys stably permutes items into ascending order of the parallel
// keys slice.
func sortByKeys[T any, D cmp.Ordered](items []T, keys []D) {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return keys[idx[i]] < keys[idx[j]] })

	sortedItems := make([]T, len(items))
	for i, k := range idx {
		sortedItems[i] = items[k]
	}
	copy(items, sortedItems)
}
