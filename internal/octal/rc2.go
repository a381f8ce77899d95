package octal

// RC2Solver is RCSolver's parity-aware refinement: breaking moves are split
// by whether their rule index b (the number of stones taken) is even or odd,
// each half gets its own
// rare/common split keyed by (nimber, position-parity) pairs, and those
// splits are rebuilt independently.
//
// The source this is ported from only shows a dynamic (threshold-based)
// rebuild schedule for RC2. Static-vs-dynamic agreement is required of every
// strategy, so RC2Solver is generalized here the same way RCSolver is:
// DynamicRebuildThreshold nil selects a power-of-two rebuild schedule,
// non-nil selects the threshold-based schedule. Both compute the same
// sequence.
type RC2Solver struct {
	Game                    *Game
	DynamicRebuildThreshold *uint32

	breaking  [2][]uint8
	nimbers   []uint16
	nimberNum NimberStats
	split     [2]*rcSplit
}

func NewRC2Solver(g *Game) *RC2Solver {
	return &RC2Solver{Game: g, breaking: splitBreakingMoves(g), split: [2]*rcSplit{newRCSplit(0), newRCSplit(1)}}
}

func NewDynamicRC2Solver(g *Game, threshold uint32) *RC2Solver {
	return &RC2Solver{
		Game: g, DynamicRebuildThreshold: &threshold,
		breaking: splitBreakingMoves(g), split: [2]*rcSplit{newRCSplit(0), newRCSplit(1)},
	}
}

func splitBreakingMoves(g *Game) [2][]uint8 {
	var result [2][]uint8
	for _, m := range g.Breaking {
		result[m&1] = append(result[m&1], m)
	}
	return result
}

func (s *RC2Solver) Nimbers() []uint16 { return s.nimbers }

func (s *RC2Solver) rebuild(d int) {
	s.split[d].rebuildD(&s.nimberNum, s.nimbers, uint16(d))
}

func (s *RC2Solver) Next() uint16 {
	option := newBitSet(1 << 16)
	n := len(s.nimbers)
	s.Game.considerTaking(s.nimbers, option)
	for d := 0; d < 2; d++ {
		for _, bv := range s.breaking[d] {
			b := int(bv)
			if b+1 >= n {
				break
			}
			afterTake := n - b
			for _, i := range s.split[d].rPositions {
				if i >= afterTake {
					break
				}
				option.add(s.nimbers[i] ^ s.nimbers[afterTake-i])
			}
		}
	}

	nd := uint16(n) & 1
	result := (option.mex() << 1) | nd
	toCheck := [2]bool{s.split[0].inR(result, 0), s.split[1].inR(result, 1)}
	moves := [2][][2]int{
		breakingSplits(n, s.breaking[0]),
		breakingSplits(n, s.breaking[1]),
	}
	idx := [2]int{0, 0}
	for toCheck[0] || toCheck[1] {
		for d := 0; d < 2; d++ {
			for toCheck[d] {
				if idx[d] >= len(moves[d]) {
					toCheck[d] = false
					break
				}
				a, b := moves[d][idx[d]][0], moves[d][idx[d]][1]
				idx[d]++
				optionNimber := s.nimbers[a] ^ s.nimbers[b]
				option.add(optionNimber)
				if (result >> 1) == optionNimber {
					result = (option.mex() << 1) | nd
					toCheck[0] = s.split[0].inR(result, 0)
					toCheck[1] = s.split[1].inR(result, 1)
				}
			}
		}
	}

	s.nimberNum.Count(result)
	actual := result >> 1
	s.nimbers = append(s.nimbers, actual)

	for d := 0; d < 2; d++ {
		if s.split[d].r.contains(result) {
			if n != 0 {
				s.split[d].rPositions = append(s.split[d].rPositions, n)
			}
			if s.DynamicRebuildThreshold != nil {
				if s.split[d].shouldRebuildD(result, &s.nimberNum, *s.DynamicRebuildThreshold) {
					s.rebuild(d)
				}
			} else if isPowerOfTwo(n) {
				s.rebuild(d)
			}
		} else {
			s.split[d].addToC(result)
		}
	}
	return actual
}
