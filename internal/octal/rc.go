package octal

// RCSolver computes the same nimber sequence as NaiveSolver, but prunes most
// breaking-option XOR pairs once the rare/common split knows that a
// candidate mex value already lies in C (common): only R's (rare) recorded
// positions need to be checked before the split is trusted again.
//
// DynamicRebuildThreshold selects the rebuild schedule: nil rebuilds the
// split whenever the position just computed is a power of two (the static
// schedule); non-nil rebuilds whenever rcSplit.shouldRebuild says the split
// has drifted by more than the given threshold (the dynamic schedule). Both
// schedules compute the identical nimber sequence - they only trade off how
// often the split is recomputed from scratch.
type RCSolver struct {
	Game                    *Game
	DynamicRebuildThreshold *uint32

	nimbers   []uint16
	nimberNum NimberStats
	split     *rcSplit
}

// NewRCSolver returns a static-rebuild RC solver for g.
func NewRCSolver(g *Game) *RCSolver {
	return &RCSolver{Game: g, split: newRCSplit(0)}
}

// NewDynamicRCSolver returns an RC solver that rebuilds its split whenever
// it has drifted by more than threshold occurrences, instead of on every
// power-of-two position.
func NewDynamicRCSolver(g *Game, threshold uint32) *RCSolver {
	return &RCSolver{Game: g, DynamicRebuildThreshold: &threshold, split: newRCSplit(0)}
}

func (s *RCSolver) Nimbers() []uint16 { return s.nimbers }

func (s *RCSolver) rebuildRC() { s.split.rebuild(&s.nimberNum, s.nimbers) }

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func (s *RCSolver) Next() uint16 {
	option := newBitSet(1 << 16)
	n := len(s.nimbers)
	s.Game.considerTaking(s.nimbers, option)
	for _, bv := range s.Game.Breaking {
		b := int(bv)
		if b+1 >= n {
			break
		}
		afterTake := n - b
		for _, i := range s.split.rPositions {
			if i >= afterTake {
				break
			}
			option.add(s.nimbers[i] ^ s.nimbers[afterTake-i])
		}
	}
	result := option.mex()
	if !s.split.inC(result) {
	outer:
		for _, bv := range s.Game.Breaking {
			b := int(bv)
			if b+1 >= n {
				break
			}
			afterTake := n - b
			for i := 1; i <= afterTake/2; i++ {
				optionNimber := s.nimbers[i] ^ s.nimbers[afterTake-i]
				option.add(optionNimber)
				if result == optionNimber {
					result = option.mex()
					if s.split.inC(result) {
						break outer
					}
				}
			}
		}
	}
	s.nimberNum.Count(result)
	s.nimbers = append(s.nimbers, result)

	if s.DynamicRebuildThreshold != nil {
		if s.split.r.contains(result) {
			if n != 0 {
				s.split.rPositions = append(s.split.rPositions, n)
			}
			if s.split.shouldRebuild(result, &s.nimberNum, *s.DynamicRebuildThreshold) {
				s.rebuildRC()
			}
		}
	} else {
		if isPowerOfTwo(n) {
			s.rebuildRC()
		} else if s.split.r.contains(result) && n != 0 {
			s.split.rPositions = append(s.split.rPositions, n)
		}
	}
	return result
}
