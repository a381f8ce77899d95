package octal

// rcSplit partitions every nimber computed so far into two sets: C (common),
// a sum-free set outside which no two members XOR to a member, and R (rare),
// everything else. Once C is known, a heap's breaking options only need to be
// checked against R's positions - any C-valued successor already proves a
// forbidden XOR pair can't complete the mex in C's favour.
type rcSplit struct {
	r, c       bitSet
	maxC       uint16
	rPositions []int
}

func newRCSplit(d uint16) *rcSplit {
	s := &rcSplit{r: newBitSet(1 << 16), c: newBitSet(1 << 16)}
	s.r.add(d) // (0,0) if d=0, (0,1) if d=1 when used in paired (nimber<<1|parity) form
	return s
}

func (s *rcSplit) canAddToC(nimber uint16) bool {
	for v := uint16(1); v <= s.maxC; v++ {
		if s.c.contains(v) && s.c.contains(nimber^v) {
			return false
		}
	}
	return true
}

func (s *rcSplit) canAddToCD(nimber, d uint16) bool { return s.canAddToC(nimber ^ d) }

func (s *rcSplit) addToC(nimber uint16) {
	s.c.add(nimber)
	if nimber > s.maxC {
		s.maxC = nimber
	}
}

func (s *rcSplit) addToR(nimber uint16) { s.r.add(nimber) }

func (s *rcSplit) addTo(nimber uint16, toC bool) bool {
	if toC {
		s.addToC(nimber)
	} else {
		s.addToR(nimber)
	}
	return toC
}

func (s *rcSplit) classify(nimber uint16) bool { return s.addTo(nimber, s.canAddToC(nimber)) }

func (s *rcSplit) classifyD(nimber, d uint16) bool {
	return s.addTo(nimber, s.canAddToC(nimber^d))
}

func (s *rcSplit) inC(nimber uint16) bool {
	if s.c.contains(nimber) {
		return true
	}
	if s.r.contains(nimber) {
		return false
	}
	return s.classify(nimber)
}

// inR reports whether nimber belongs in R, classifying it there if undecided.
// Never adds nimber to C.
func (s *rcSplit) inR(nimber, d uint16) bool {
	if s.c.contains(nimber) {
		return false
	}
	if s.r.contains(nimber) {
		return true
	}
	if s.canAddToCD(nimber, d) {
		return false
	}
	s.r.add(nimber)
	return true
}

func (s *rcSplit) clear() {
	s.c.clear()
	s.r.clear()
	s.maxC = 0
	s.rPositions = s.rPositions[:0]
}

func (s *rcSplit) rebuild(stats *NimberStats, nimbers []uint16) {
	s.clear()
	s.r.add(0)
	for _, nimber := range stats.NimbersFromMostCommon(0) {
		s.classify(nimber)
	}
	for position := 1; position < len(nimbers); position++ {
		if s.r.contains(nimbers[position]) {
			s.rPositions = append(s.rPositions, position)
		}
	}
}

func (s *rcSplit) rebuildD(stats *NimberStats, nimbers []uint16, d uint16) {
	s.clear()
	s.r.add(d)
	for _, nimber := range stats.NimbersFromMostCommon(d) {
		s.classifyD(nimber, d)
	}
	for position := 1; position < len(nimbers); position++ {
		if s.r.contains((nimbers[position] << 1) | (uint16(position) & 1)) {
			s.rPositions = append(s.rPositions, position)
		}
	}
}

// shouldRebuildD reports whether the R/C split has drifted enough, after
// recentNimber's classification, that a full rebuild from stats is owed.
func (s *rcSplit) shouldRebuildD(recentNimber uint16, stats *NimberStats, rebuildThreshold uint32) bool {
	rOcc := stats.Occurrences(recentNimber) + rebuildThreshold
	for c := uint16(0); c <= stats.max; c++ {
		cOcc := stats.Occurrences(c)
		if cOcc == 0 || !s.c.contains(c) {
			continue
		}
		cGreater := c > recentNimber
		if (cGreater && rOcc == cOcc) || (!cGreater && rOcc == cOcc+1) {
			return true
		}
	}
	return false
}

// shouldRebuild is shouldRebuildD with the nimber-0 comparison skipped, since
// 0 is unconditionally in R.
func (s *rcSplit) shouldRebuild(recentNimber uint16, stats *NimberStats, rebuildThreshold uint32) bool {
	rOcc := stats.Occurrences(recentNimber) + rebuildThreshold
	for c := uint16(1); c <= stats.max; c++ {
		cOcc := stats.Occurrences(c)
		if cOcc == 0 || !s.c.contains(c) {
			continue
		}
		cGreater := c > recentNimber
		if (cGreater && rOcc == cOcc) || (!cGreater && rOcc == cOcc+1) {
			return true
		}
	}
	return false
}
