package solver

import "github.com/beling/impartial-games/internal/nimberset"

// notInSet is returned by the BR strategy's set-membership probes when a
// position's nimber provably isn't a member of the requested candidate set;
// it is never itself a valid nimber result (a mex is always < 256, and
// callers only ever compare it for equality, never store it).
const notInSet uint8 = 255

// NimberInSet computes position's nimber if it lies in requestedNimbers, or
// returns (0, false) once it proves the nimber lies outside it; a nimber the
// search pins down exactly is returned with true even when it lies outside
// requestedNimbers - the method described in P.
// Beling, M. Rogalski, "On pruning search trees of impartial games"
// (doi:10.1016/j.artint.2020.103262). Unlike HasNimber, which asks about one
// candidate at a time, this tracks a whole set of candidates at once and
// prunes as soon as the position's remaining potential nimbers become
// disjoint from the request.
func (s *Simple[P]) NimberInSet(position P, requestedNimbers nimberset.Set64) (uint8, bool) {
	s.Stats.Pre()
	if v, ok := s.nimberFromConstDB(position); ok {
		s.Stats.DBCut(v)
		return v, true
	}
	v := s.nimberInSet(position, requestedNimbers)
	if v == notInSet {
		return 0, false
	}
	return v, true
}

// nimberInSet assumes the caller already checked the end-game database and
// already called s.Stats.Pre() for position.
func (s *Simple[P]) nimberInSet(position P, requestedNimbers nimberset.Set64) uint8 {
	if v, ok := s.nimberFromTT(position); ok {
		s.Stats.DBCut(v)
		return v
	}
	s.Stats.ETC()
	movesCount := s.Game.MovesCount(position)
	potential := nimberset.ExtendedWithLowest64(movesCount + 1)
	successors := s.Game.SuccessorsHeuristicallyOrdered(position, make([]P, 0, movesCount))
	moves := make([]P, 0, len(successors))
	for _, m := range successors {
		if potential.IsDistinctFrom(requestedNimbers) {
			s.Stats.Unknown()
			return notInSet
		}
		if v, ok := s.nimberFromAnyDB(m); ok {
			s.Stats.DBSkip(v)
			potential = removeNimberExtended64(potential, v)
		} else {
			moves = append(moves, m)
		}
	}
	s.Sorter.SortMoves(moves)
	s.Stats.Recursive()
	uptoLargestRequested := requestedNimbers.UptoLargest()
	exact := true
	for _, m := range moves {
		if potential.IsDistinctFrom(requestedNimbers) {
			s.Stats.Unknown()
			return notInSet
		}
		withoutLargest := potential.WithoutLargest()
		s.Stats.Pre()
		mNimber := s.nimberInSet(m, withoutLargest.IntersectedWith(uptoLargestRequested))
		if mNimber == notInSet {
			potential.RemoveLargest()
			exact = false
		} else {
			potential = removeNimberExtended64(potential, mNimber)
		}
	}
	if exact || !potential.IsDistinctFrom(uptoLargestRequested) {
		result := potential.OnlyElement()
		s.TT.StoreNimber(position, result)
		s.Stats.Exact(result)
		return result
	}
	s.Stats.Unknown()
	return notInSet
}

// removeNimberExtended64 removes nimber from e's concrete details, without
// touching the overflow count: nimber is always below the bitset's width
// here; the caller only ever removes values it just read as a position's
// exact nimber, which are always under 64.
func removeNimberExtended64(e nimberset.Extended64, nimber uint8) nimberset.Extended64 {
	return nimberset.ExtendedFromParts64(e.Details().Remove(nimber), e.BiggerCount())
}

// NimberBR computes position's nimber using NimberInSet over every
// candidate 0..MovesCount(position), which is the same set HasNimber would
// try one at a time but pruned all together.
func (s *Simple[P]) NimberBR(position P) uint8 {
	requested := nimberset.WithLowestSet64(s.Game.MovesCount(position) + 1)
	v, _ := s.NimberInSet(position, requested)
	return v
}

// NimberOfInitialBR computes the initial position's nimber using NimberBR,
// short-circuiting via IsInitialPositionWinning when known.
func (s *Simple[P]) NimberOfInitialBR() uint8 {
	initial := s.Game.InitialPosition()
	if winning, known := s.Game.IsInitialPositionWinning(); known {
		if v, resolved := s.nimberFromKnownOutcome(initial, winning); resolved {
			return v
		}
	}
	return s.NimberBR(initial)
}

func (s *Simple[P]) nimberFromKnownOutcome(position P, winning bool) (uint8, bool) {
	if !winning {
		return 0, true
	}
	movesCount := s.Game.MovesCount(position)
	if movesCount == 1 {
		return 1, true
	}
	requested := nimberset.WithLowestSet64(movesCount + 1).Remove(0)
	v, ok := s.NimberInSet(position, requested)
	return v, ok
}

// NimberBRAspSetReportProgress computes position's nimber by trying
// candidates from low to high, but for each candidate only asks "is any
// successor's nimber exactly this candidate" via a singleton-set NimberInSet
// probe - the aspiration-set refinement of NimberLVBReportProgress, which
// prunes a successor's whole remaining search as soon as its nimber is
// pinned down to be something other than the current candidate.
func (s *Simple[P]) NimberBRAspSetReportProgress(position P, outcomeKnown, outcomeLosing bool, progress ProgressReporter) uint8 {
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
results:
	for result := start; result < movesCount; result++ {
		progress.Progress(result)
		r := uint8(result)
		if nimbersToSkip.Contains(r) {
			continue
		}
		index := 0
		for index < len(moves) {
			s.Stats.Pre()
			mNimber := s.nimberInSet(moves[index], nimberset.SingletonSet64(r))
			if mNimber != notInSet {
				moves = removeAt(moves, index)
				if mNimber == r {
					continue results
				}
				nimbersToSkip = nimbersToSkip.Append(mNimber)
			} else {
				index++
			}
		}
		s.TT.StoreNimber(position, r)
		s.Stats.Exact(r)
		progress.End()
		return r
	}
	result := uint8(movesCount)
	s.TT.StoreNimber(position, result)
	s.Stats.Exact(result)
	progress.End()
	return result
}

// NimberBRAspSet computes position's nimber using the aspiration-set
// strategy, reporting no progress.
func (s *Simple[P]) NimberBRAspSet(position P) uint8 {
	return s.NimberBRAspSetReportProgress(position, false, false, NullProgress{})
}

// NimberOfInitialBRAspSet computes the initial position's nimber using
// NimberBRAspSet.
func (s *Simple[P]) NimberOfInitialBRAspSet() uint8 {
	initial := s.Game.InitialPosition()
	winning, known := s.Game.IsInitialPositionWinning()
	return s.NimberBRAspSetReportProgress(initial, known, known && !winning, NullProgress{})
}
