package solver

import "github.com/beling/impartial-games/internal/nimberset"

// NimberOfComponentInSet computes a single component's nimber if it lies in
// requestedNimbers, or returns (0, false) if it provably doesn't, per the
// same Beling-Rogalski aspiration-set strategy as Simple.NimberInSet.
func (s *Decomposable[P, DP]) NimberOfComponentInSet(position P, requestedNimbers nimberset.Set64) (uint8, bool) {
	s.Stats.Pre()
	if v, ok := s.nimberFromConstDB(position); ok {
		s.Stats.DBCut(v)
		return v, true
	}
	if v, ok := s.nimberFromTT(position); ok {
		s.Stats.DBCut(v)
		return v, true
	}
	v := s.componentNimberInSet(position, requestedNimbers)
	if v == notInSet {
		return 0, false
	}
	return v, true
}

func (s *Decomposable[P, DP]) componentNimberInSet(position P, requestedNimbers nimberset.Set64) uint8 {
	s.Stats.ETC()
	movesCount := s.Game.MovesCount(position)
	potential := nimberset.ExtendedWithLowest64(movesCount + 1)
	components := make([]P, 0, 2*int(movesCount))
	moves := make([]pendingMove, 0, movesCount)
	successors := s.Game.SuccessorsHeuristicallyOrdered(position, make([]DP, 0, movesCount))
	for _, composedMove := range successors {
		if potential.IsDistinctFrom(requestedNimbers) {
			s.Stats.Unknown()
			return notInSet
		}
		info := s.decompose(composedMove, &components)
		if info.span.Len == 0 {
			potential = removeNimberExtended64(potential, info.nimber)
		} else {
			moves = append(moves, info)
		}
	}
	s.Stats.Recursive()
	uptoLargestRequested := requestedNimbers.UptoLargest()
	exact := true
	for _, m := range moves {
		if potential.IsDistinctFrom(requestedNimbers) {
			s.Stats.Unknown()
			return notInSet
		}
		withoutLargest := potential.WithoutLargest()
		for m.span.Len > 1 {
			s.Stats.Pre()
			last := components[m.span.First+m.span.Len-1]
			lastMovesCount := s.Game.MovesCount(last)
			m.nimber ^= s.componentNimberInSet(last, nimberset.WithLowestSet64(lastMovesCount+1))
			m.span.Len--
		}
		s.Stats.Pre()
		firstNimber := s.componentNimberInSet(components[m.span.First],
			withoutLargest.IntersectedWith(uptoLargestRequested).EachXoredWith(m.nimber))
		if firstNimber == notInSet {
			potential.RemoveLargest()
			exact = false
		} else {
			potential = removeNimberExtended64(potential, firstNimber^m.nimber)
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

// NimberOfComponentBR computes a single component's nimber using
// NimberOfComponentInSet over every candidate 0..MovesCount(position).
func (s *Decomposable[P, DP]) NimberOfComponentBR(position P) uint8 {
	requested := nimberset.WithLowestSet64(s.Game.MovesCount(position) + 1)
	v, _ := s.NimberOfComponentInSet(position, requested)
	return v
}

// NimberBR computes a (possibly multi-component) move's nimber as the XOR of
// its components' nimbers, each via NimberOfComponentBR.
func (s *Decomposable[P, DP]) NimberBR(position DP) uint8 {
	var result uint8
	for _, c := range s.Game.Decompose(position, make([]P, 0, 2)) {
		result ^= s.NimberOfComponentBR(c)
	}
	return result
}

// NimberOfInitialBR computes the initial position's nimber using
// NimberOfComponentBR, short-circuiting via IsInitialPositionWinning when
// known.
func (s *Decomposable[P, DP]) NimberOfInitialBR() uint8 {
	initial := s.Game.InitialPosition()
	if winning, known := s.Game.IsInitialPositionWinning(); known {
		if !winning {
			return 0
		}
		movesCount := s.Game.MovesCount(initial)
		if movesCount == 1 {
			return 1
		}
		requested := nimberset.WithLowestSet64(movesCount + 1).Remove(0)
		v, _ := s.NimberOfComponentInSet(initial, requested)
		return v
	}
	return s.NimberOfComponentBR(initial)
}

// decomposableNimberInSet reduces m's span to its first still-unresolved
// component, XORing every later one into m.nimber via the (non-aspiration)
// BR strategy, then probes whether the first component's nimber can be
// pinned down to something that makes the whole move's nimber land in
// requested - the decomposable counterpart of decomposableHasNimber, but
// returning the resolved nimber instead of only testing one candidate.
func (s *Decomposable[P, DP]) decomposableNimberInSet(m pendingMove, components []P, requested nimberset.Set64) (uint8, bool) {
	for m.span.Len > 1 {
		s.Stats.Pre()
		last := components[m.span.First+m.span.Len-1]
		m.nimber ^= s.NimberOfComponentBR(last)
		m.span.Len--
	}
	v, ok := s.NimberOfComponentInSet(components[m.span.First], requested.EachXoredWith(m.nimber))
	if !ok {
		return 0, false
	}
	return v ^ m.nimber, true
}

// NimberOfComponentBRAspSetReportProgress computes a single component's
// nimber by trying candidates from low to high, asking for each one whether
// any still-unresolved move's nimber is exactly that candidate via a
// singleton-set decomposableNimberInSet probe - the decomposable
// aspiration-set refinement of NimberOfComponentLVBReportProgress, mirroring
// Simple.NimberBRAspSetReportProgress one component at a time.
func (s *Decomposable[P, DP]) NimberOfComponentBRAspSetReportProgress(position P, outcomeKnown, outcomeLosing bool, progress ProgressReporter) uint8 {
	if outcomeKnown && outcomeLosing {
		return 0
	}
	s.Stats.Pre()
	if v, ok := s.nimberFromConstDB(position); ok {
		s.Stats.DBCut(v)
		return v
	}
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
			mNimber, ok := s.decomposableNimberInSet(moves[index], components, nimberset.SingletonSet64(r))
			if ok {
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

// NimberBRAspSetReportProgress computes a (possibly multi-component) move's
// nimber as the XOR of its components' nimbers, each via
// NimberOfComponentBRAspSetReportProgress.
func (s *Decomposable[P, DP]) NimberBRAspSetReportProgress(position DP, progress ProgressReporter) uint8 {
	var result uint8
	for _, c := range s.Game.Decompose(position, make([]P, 0, 2)) {
		result ^= s.NimberOfComponentBRAspSetReportProgress(c, false, false, progress)
	}
	return result
}

// NimberBRAspSet computes a move's nimber via NimberBRAspSetReportProgress,
// reporting no progress.
func (s *Decomposable[P, DP]) NimberBRAspSet(position DP) uint8 {
	return s.NimberBRAspSetReportProgress(position, NullProgress{})
}

// NimberOfInitialBRAspSet computes the initial position's nimber using
// NimberOfComponentBRAspSetReportProgress, short-circuiting via
// IsInitialPositionWinning when known.
func (s *Decomposable[P, DP]) NimberOfInitialBRAspSet() uint8 {
	initial := s.Game.InitialPosition()
	winning, known := s.Game.IsInitialPositionWinning()
	return s.NimberOfComponentBRAspSetReportProgress(initial, known, known && !winning, NullProgress{})
}
