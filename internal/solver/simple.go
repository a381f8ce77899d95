package solver

import (
	"github.com/beling/impartial-games/internal/cache"
	"github.com/beling/impartial-games/internal/game"
	"github.com/beling/impartial-games/internal/nimberset"
)

// Simple computes nimbers for a game.SimpleGame. It holds a transposition
// table (read and written on every resolved position) and, optionally, a
// read-only end-game database consulted first since its answers never need
// storing back.
//
// The candidate-nimber bitsets used while pruning (Set64/Extended64) cap a
// single node's branching factor at 64 distinct nimbers; every adapter in
// this module stays far below that, so the wider nimberset widths are left
// for callers with bigger games to wire in themselves.
type Simple[P comparable] struct {
	Game   game.SimpleGame[P]
	TT     cache.Storer[P]
	EndDB  cache.Provider[P]
	Sorter game.MoveSorter[P]
	Stats  StatsCollector
}

// NewSimple constructs a Simple solver. endDB, sorter and stats may be nil:
// they default to no end-game database, generation order, and no
// statistics, respectively.
func NewSimple[P comparable](g game.SimpleGame[P], tt cache.Storer[P], endDB cache.Provider[P], sorter game.MoveSorter[P], stats StatsCollector) *Simple[P] {
	if sorter == nil {
		sorter = game.PreserveGeneratedOrder[P]{}
	}
	if stats == nil {
		stats = NullStats{}
	}
	return &Simple[P]{Game: g, TT: tt, EndDB: endDB, Sorter: sorter, Stats: stats}
}

func (s *Simple[P]) nimberFromTT(position P) (uint8, bool) {
	s.Stats.TTRead()
	return s.TT.GetNimberAndSelfOrganize(position)
}

func (s *Simple[P]) nimberFromConstDB(position P) (uint8, bool) {
	if s.EndDB == nil {
		return 0, false
	}
	s.Stats.ConstDBRead()
	return s.EndDB.GetNimberAndSelfOrganize(position)
}

func (s *Simple[P]) nimberFromAnyDB(position P) (uint8, bool) {
	if v, ok := s.nimberFromConstDB(position); ok {
		return v, true
	}
	return s.nimberFromTT(position)
}

// etcSimple expands position's heuristically-ordered successors, resolving
// as many as possible from a cache (Enhanced Transposition Cutoff) before
// the caller recurses into whatever remains.
func (s *Simple[P]) etcSimple(position P) (movesCount uint16, nimbersToSkip nimberset.Set64, moves []P) {
	s.Stats.ETC()
	movesCount = s.Game.MovesCount(position)
	successors := s.Game.SuccessorsHeuristicallyOrdered(position, make([]P, 0, movesCount))
	moves = make([]P, 0, len(successors))
	for _, m := range successors {
		if v, ok := s.nimberFromAnyDB(m); ok {
			s.Stats.DBSkip(v)
			nimbersToSkip = nimbersToSkip.Append(v)
		} else {
			moves = append(moves, m)
		}
	}
	s.Sorter.SortMoves(moves)
	return
}

func removeAt[P any](moves []P, index int) []P {
	return append(moves[:index], moves[index+1:]...)
}

// NimberDEF computes the nimber of position directly: recurse into every
// successor, then take the mex of their nimbers. It never prunes, so every
// reachable position is visited exactly once (amortized by the
// transposition table).
func (s *Simple[P]) NimberDEF(position P) uint8 {
	s.Stats.Pre()
	if v, ok := s.nimberFromAnyDB(position); ok {
		s.Stats.DBCut(v)
		return v
	}
	s.Stats.Recursive()
	var nimbers nimberset.Set64
	successors := s.Game.Successors(position, make([]P, 0, s.Game.MovesCount(position)))
	for _, m := range successors {
		nimbers = nimbers.Append(s.NimberDEF(m))
	}
	result := nimbers.Mex()
	s.TT.StoreNimber(position, result)
	s.Stats.Exact(result)
	return result
}

// NimberOfInitialDEF computes the nimber of the game's initial position
// using NimberDEF, short-circuiting via IsInitialPositionWinning when known.
func (s *Simple[P]) NimberOfInitialDEF() uint8 {
	initial := s.Game.InitialPosition()
	if winning, known := s.Game.IsInitialPositionWinning(); known {
		if !winning {
			return 0
		}
		if s.Game.MovesCount(initial) == 1 {
			return 1
		}
	}
	return s.NimberDEF(initial)
}

// HasNimber reports whether position's nimber equals nim, using the
// Lemoine-Viennot-Beling recurrence: position has nimber nim iff no
// successor has nimber nim, and every smaller candidate nim' < nim is ruled
// out by some successor actually having nimber nim'.
func (s *Simple[P]) HasNimber(position P, nim uint8) bool {
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
	s.Stats.ETC()
	var nimbersToSkip nimberset.Set64
	successors := s.Game.SuccessorsHeuristicallyOrdered(position, make([]P, 0, movesCount))
	moves := make([]P, 0, len(successors))
	for _, m := range successors {
		if v, ok := s.nimberFromAnyDB(m); ok {
			if v == nim {
				s.Stats.DBCut(v)
				return false
			}
			s.Stats.DBSkip(v)
			nimbersToSkip = nimbersToSkip.Append(v)
		} else {
			moves = append(moves, m)
		}
	}
	s.Sorter.SortMoves(moves)
	s.Stats.Recursive()
	for newNim := uint8(0); newNim < nim; newNim++ {
		if nimbersToSkip.Contains(newNim) {
			continue
		}
		if index := s.findHasNimber(moves, newNim); index >= 0 {
			moves = removeAt(moves, index)
		} else {
			s.TT.StoreNimber(position, newNim)
			s.Stats.Exact(newNim)
			return false
		}
	}
	if movesCount > uint16(nim) {
		for _, m := range moves {
			if s.HasNimber(m, nim) {
				s.Stats.Unknown()
				return false
			}
		}
	}
	s.TT.StoreNimber(position, nim)
	s.Stats.Exact(nim)
	return true
}

func (s *Simple[P]) findHasNimber(moves []P, nim uint8) int {
	for i, m := range moves {
		if s.HasNimber(m, nim) {
			return i
		}
	}
	return -1
}

// NimberLVBReportProgress computes position's nimber with HasNimber,
// reporting each candidate it tries to progress. outcomeKnown/outcomeLosing
// describe a known win/loss outcome for position, letting the search start
// from candidate 1 instead of 0 when position is known winning.
func (s *Simple[P]) NimberLVBReportProgress(position P, outcomeKnown, outcomeLosing bool, progress ProgressReporter) uint8 {
	if outcomeKnown && outcomeLosing {
		return 0
	}
	s.Stats.Pre()
	if v, ok := s.nimberFromAnyDB(position); ok {
		s.Stats.DBCut(v)
		return v
	}
	movesCount, nimbersToSkip, moves := s.etcSimple(position)
	s.Stats.Recursive()
	progress.Begin(movesCount)
	start := uint16(0)
	if outcomeKnown && !outcomeLosing {
		start = 1
	}
	for result := start; result < movesCount; result++ {
		progress.Progress(result)
		r := uint8(result)
		if nimbersToSkip.Contains(r) {
			continue
		}
		if index := s.findHasNimber(moves, r); index >= 0 {
			moves = removeAt(moves, index)
		} else {
			s.TT.StoreNimber(position, r)
			s.Stats.Exact(r)
			progress.End()
			return r
		}
	}
	result := uint8(movesCount)
	s.TT.StoreNimber(position, result)
	s.Stats.Exact(result)
	progress.End()
	return result
}

// NimberLVB computes position's nimber using the LVB recurrence, reporting
// no progress.
func (s *Simple[P]) NimberLVB(position P) uint8 {
	return s.NimberLVBReportProgress(position, false, false, NullProgress{})
}

// NimberOfInitialLVB computes the initial position's nimber using NimberLVB.
func (s *Simple[P]) NimberOfInitialLVB() uint8 {
	initial := s.Game.InitialPosition()
	winning, known := s.Game.IsInitialPositionWinning()
	return s.NimberLVBReportProgress(initial, known, known && !winning, NullProgress{})
}
