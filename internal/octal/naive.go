package octal

// NaiveSolver computes nimber[0], nimber[1], ... one at a time by direct
// enumeration of every taking and breaking option a heap size admits - the
// baseline every other strategy must agree with.
type NaiveSolver struct {
	Game    *Game
	nimbers []uint16
}

// NewNaiveSolver returns a solver with no nimbers computed yet.
func NewNaiveSolver(g *Game) *NaiveSolver { return &NaiveSolver{Game: g} }

// Nimbers returns every nimber computed so far, in order.
func (s *NaiveSolver) Nimbers() []uint16 { return s.nimbers }

// Next computes and appends the next nimber in the sequence.
func (s *NaiveSolver) Next() uint16 {
	option := newBitSet(1 << 16)
	n := len(s.nimbers)
	s.Game.considerTaking(s.nimbers, option)
	for _, b := range s.Game.Breaking {
		bv := int(b)
		if bv >= n {
			break
		}
		afterTake := n - bv
		for i := 1; i <= afterTake/2; i++ {
			option.add(s.nimbers[i] ^ s.nimbers[afterTake-i])
		}
	}
	result := option.mex()
	s.nimbers = append(s.nimbers, result)
	return result
}

// NimbersUpTo drives Next until n+1 nimbers are computed, returning them.
func NimbersUpTo(s Solver, n int) []uint16 {
	for len(s.Nimbers()) <= n {
		s.Next()
	}
	return s.Nimbers()
}

// Solver is implemented by every octal-game strategy (Naive, RC, RC2): each
// computes the same nimber sequence, in order, one position at a time.
type Solver interface {
	Nimbers() []uint16
	Next() uint16
}
