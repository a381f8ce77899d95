package solver

import (
	"github.com/beling/impartial-games/internal/cache"
	"github.com/beling/impartial-games/internal/game"
	"github.com/beling/impartial-games/internal/nimberset"
)

// Decomposable computes nimbers for a game.DecomposableGame, whose moves can
// split a position into several independent components that combine by XOR
// (Sprague-Grundy theorem). P is a single component's position, as cached by
// TT/EndDB; DP is a whole move's (possibly multi-component) result.
type Decomposable[P comparable, DP any] struct {
	Game   game.DecomposableGame[P, DP]
	TT     cache.Storer[P]
	EndDB  cache.Provider[P]
	Sorter game.DecomposableMoveSorter[P]
	Stats  StatsCollector
}

// NewDecomposable constructs a Decomposable solver; endDB, sorter and stats
// may be nil with the same defaults as NewSimple.
func NewDecomposable[P comparable, DP any](g game.DecomposableGame[P, DP], tt cache.Storer[P], endDB cache.Provider[P], sorter game.DecomposableMoveSorter[P], stats StatsCollector) *Decomposable[P, DP] {
	if sorter == nil {
		sorter = game.PreserveGeneratedOrderDecomposable[P]{}
	}
	if stats == nil {
		stats = NullStats{}
	}
	return &Decomposable[P, DP]{Game: g, TT: tt, EndDB: endDB, Sorter: sorter, Stats: stats}
}

func (s *Decomposable[P, DP]) nimberFromTT(position P) (uint8, bool) {
	s.Stats.TTRead()
	return s.TT.GetNimberAndSelfOrganize(position)
}

func (s *Decomposable[P, DP]) nimberFromConstDB(position P) (uint8, bool) {
	if s.EndDB == nil {
		return 0, false
	}
	s.Stats.ConstDBRead()
	return s.EndDB.GetNimberAndSelfOrganize(position)
}

func (s *Decomposable[P, DP]) nimberFromAnyDB(position P) (uint8, bool) {
	if v, ok := s.nimberFromConstDB(position); ok {
		return v, true
	}
	return s.nimberFromTT(position)
}

// pendingMove is one move awaiting resolution: the XOR of whichever of its
// components already resolved via a cache, plus the span of components
// still left in a shared buffer (see etcDecomposable).
type pendingMove struct {
	span   game.ComponentsInfo
	nimber uint8
}

// etcDecomposable expands position's heuristically-ordered moves, decomposes
// each into its components, and resolves as many components as possible
// from a cache. A move with every component resolved contributes its XORed
// nimber straight to nimbersToSkip; otherwise its still-unresolved
// components are appended to components and tracked by a pendingMove.
func (s *Decomposable[P, DP]) etcDecomposable(position P) (movesCount uint16, nimbersToSkip nimberset.Set64, components []P, moves []pendingMove) {
	s.Stats.ETC()
	movesCount = s.Game.MovesCount(position)
	successors := s.Game.SuccessorsHeuristicallyOrdered(position, make([]DP, 0, movesCount))
	components = make([]P, 0, 2*len(successors))
	moves = make([]pendingMove, 0, len(successors))
	for _, composedMove := range successors {
		info := s.decompose(composedMove, &components)
		if info.span.Len == 0 {
			s.Stats.DBSkip(info.nimber)
			nimbersToSkip = nimbersToSkip.Append(info.nimber)
		} else {
			moves = append(moves, info)
		}
	}
	infos := make([]game.ComponentsInfo, len(moves))
	for i, m := range moves {
		infos[i] = m.span
	}
	s.Sorter.SortMoves(infos, components)
	for i := range moves {
		moves[i].span = infos[i]
	}
	return
}

// decompose splits composedMove into its components, XORing into the
// returned pendingMove's nimber whichever of them resolve immediately from a
// cache, and appending the rest to components.
func (s *Decomposable[P, DP]) decompose(composedMove DP, components *[]P) pendingMove {
	first := len(*components)
	var result pendingMove
	for _, c := range s.Game.Decompose(composedMove, make([]P, 0, 2)) {
		if v, ok := s.nimberFromAnyDB(c); ok {
			s.Stats.DBSkip(v)
			result.nimber ^= v
		} else {
			*components = append(*components, c)
		}
	}
	result.span = game.ComponentsInfo{First: first, Len: len(*components) - first}
	return result
}

// NimberOfComponentDEF computes a single component's nimber directly.
func (s *Decomposable[P, DP]) NimberOfComponentDEF(position P) uint8 {
	s.Stats.Pre()
	if v, ok := s.nimberFromAnyDB(position); ok {
		s.Stats.DBCut(v)
		return v
	}
	s.Stats.Recursive()
	var nimbers nimberset.Set64
	successors := s.Game.Successors(position, make([]DP, 0, s.Game.MovesCount(position)))
	for _, m := range successors {
		nimbers = nimbers.Append(s.NimberDEF(m))
	}
	result := nimbers.Mex()
	s.TT.StoreNimber(position, result)
	s.Stats.Exact(result)
	return result
}

// NimberDEF computes a (possibly multi-component) move's nimber as the XOR
// of its components' nimbers.
func (s *Decomposable[P, DP]) NimberDEF(position DP) uint8 {
	var result uint8
	for _, c := range s.Game.Decompose(position, make([]P, 0, 2)) {
		result ^= s.NimberOfComponentDEF(c)
	}
	return result
}

// NimberOfInitialDEF computes the initial position's nimber, short-circuiting
// via IsInitialPositionWinning when known.
func (s *Decomposable[P, DP]) NimberOfInitialDEF() uint8 {
	initial := s.Game.InitialPosition()
	if winning, known := s.Game.IsInitialPositionWinning(); known {
		if !winning {
			return 0
		}
		if s.Game.MovesCount(initial) == 1 {
			return 1
		}
	}
	return s.NimberOfComponentDEF(initial)
}

// HasNimber reports whether a single component's nimber equals nim, using
// the same LVB recurrence as Simple.HasNimber.
func (s *Decomposable[P, DP]) HasNimber(position P, nim uint8) bool {
	s.Stats.Pre()
	movesCount := s.Game.MovesCount(position)
	if movesCount < uint16(nim) {
		s.Stats.Unknown()
		return false
	}
	if v, ok := s.nimberFromTT(position); ok {
		s.Stats.DBCut(v)
		return v == nim
	}
	_, nimbersToSkip, components, moves := s.etcDecomposable(position)
	if nimbersToSkip.Contains(nim) {
		s.Stats.DBCut(nim)
		return false
	}
	s.Stats.Recursive()
	for newNim := uint8(0); newNim < nim; newNim++ {
		if nimbersToSkip.Contains(newNim) {
			continue
		}
		if index := s.findHasNimber(moves, components, newNim); index >= 0 {
			moves = removeAt(moves, index)
		} else {
			s.TT.StoreNimber(position, newNim)
			s.Stats.Exact(newNim)
			return false
		}
	}
	if movesCount > uint16(nim) {
		for _, m := range moves {
			if s.decomposableHasNimber(m, components, nim) {
				s.Stats.Unknown()
				return false
			}
		}
	}
	s.TT.StoreNimber(position, nim)
	s.Stats.Exact(nim)
	return true
}

func (s *Decomposable[P, DP]) findHasNimber(moves []pendingMove, components []P, nim uint8) int {
	for i, m := range moves {
		if s.decomposableHasNimber(m, components, nim) {
			return i
		}
	}
	return -1
}

// decomposableHasNimber reduces m's span to its first component, XORing the
// rest into m.nimber (HasNimber only applies to the final component left in
// a span, so every other component must be fully resolved first), then asks
// whether the first component has nimber nim^m.nimber.
func (s *Decomposable[P, DP]) decomposableHasNimber(m pendingMove, components []P, nim uint8) bool {
	for m.span.Len > 1 {
		s.Stats.Pre()
		last := components[m.span.First+m.span.Len-1]
		m.nimber ^= s.nimberOfComponentLVBInner(last, false, false, NullProgress{})
		m.span.Len--
	}
	return s.HasNimber(components[m.span.First], nim^m.nimber)
}

// NimberOfComponentLVBReportProgress computes a single component's nimber
// using the LVB recurrence.
func (s *Decomposable[P, DP]) NimberOfComponentLVBReportProgress(position P, outcomeKnown, outcomeLosing bool, progress ProgressReporter) uint8 {
	if outcomeKnown && outcomeLosing {
		return 0
	}
	s.Stats.Pre()
	if v, ok := s.nimberFromConstDB(position); ok {
		s.Stats.DBCut(v)
		return v
	}
	return s.nimberOfComponentLVBInner(position, outcomeKnown, outcomeLosing, progress)
}

func (s *Decomposable[P, DP]) nimberOfComponentLVBInner(position P, outcomeKnown, outcomeLosing bool, progress ProgressReporter) uint8 {
	if v, ok := s.nimberFromTT(position); ok {
		s.Stats.DBCut(v)
		return v
	}
	movesCount, nimbersToSkip, components, moves := s.etcDecomposable(position)
	s.Stats.Recursive()
	progress.Begin(movesCount)
	start := uint16(0)
	if outcomeKnown && !outcomeLosing {
		start = 1
	}
	for newNim := start; newNim < movesCount; newNim++ {
		progress.Progress(newNim)
		n := uint8(newNim)
		if nimbersToSkip.Contains(n) {
			continue
		}
		if index := s.findHasNimber(moves, components, n); index >= 0 {
			moves = removeAt(moves, index)
		} else {
			s.TT.StoreNimber(position, n)
			s.Stats.Exact(n)
			progress.End()
			return n
		}
	}
	result := uint8(movesCount)
	s.TT.StoreNimber(position, result)
	s.Stats.Exact(result)
	progress.End()
	return result
}

// NimberLVBReportProgress computes a (possibly multi-component) move's
// nimber as the XOR of its components' nimbers, each via
// NimberOfComponentLVBReportProgress.
func (s *Decomposable[P, DP]) NimberLVBReportProgress(position DP, progress ProgressReporter) uint8 {
	var result uint8
	for _, c := range s.Game.Decompose(position, make([]P, 0, 2)) {
		result ^= s.NimberOfComponentLVBReportProgress(c, false, false, progress)
	}
	return result
}

// NimberLVB computes a move's nimber via NimberLVBReportProgress, reporting
// no progress.
func (s *Decomposable[P, DP]) NimberLVB(position DP) uint8 {
	return s.NimberLVBReportProgress(position, NullProgress{})
}

// NimberOfInitialLVB computes the initial position's nimber using
// NimberOfComponentLVBReportProgress, short-circuiting via
// IsInitialPositionWinning when known.
func (s *Decomposable[P, DP]) NimberOfInitialLVB() uint8 {
	initial := s.Game.InitialPosition()
	winning, known := s.Game.IsInitialPositionWinning()
	return s.NimberOfComponentLVBReportProgress(initial, known, known && !winning, NullProgress{})
}
