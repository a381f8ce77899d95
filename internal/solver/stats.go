// Package solver implements the recursion strategies (DEF, LVB, BR) that
// compute Sprague-Grundy nimbers for positions of a game.SimpleGame or
// game.DecomposableGame, backed by a transposition table and an optional
// end-game database.
package solver

import "fmt"

// SearchPhase tracks which part of visiting one position a StatsCollector is
// currently being told about: Pre (just entered), ETC (expanding successors
// to probe caches before recursing) or Recursive (actually recursing).
type SearchPhase int

const (
	PhasePre SearchPhase = iota
	PhaseETC
	PhaseRecursive
)

// ProgressReporter receives search-progress callbacks from the LVB and BR
// strategies, which try successive candidate nimbers from low to high.
type ProgressReporter interface {
	// Begin is called before searching a position or its component, with the
	// maximum candidate nimber that will be tried.
	Begin(max uint16)
	// End is called after the position or component has been resolved.
	End()
	// Progress is called just before trying the given candidate nimber.
	Progress(current uint16)
}

// NullProgress reports nothing.
type NullProgress struct{}

func (NullProgress) Begin(uint16)     {}
func (NullProgress) End()             {}
func (NullProgress) Progress(uint16)  {}

// StatsCollector receives callbacks describing the shape of the search as it
// happens, for diagnostics. A position's visit proceeds through at most the
// phases Pre, ETC and Recursive (in that order) and always finishes by
// calling exactly one of Exact, Unknown or DBCut.
type StatsCollector interface {
	Pre()
	ETC()
	Recursive()
	TTRead()
	ConstDBRead()
	DBSkip(nimber uint8)
	DBCut(nimber uint8)
	Unknown()
	Exact(nimber uint8)
	Reset()
}

// NullStats collects nothing; it is the zero-cost default for callers who
// don't need search diagnostics.
type NullStats struct{}

func (NullStats) Pre()             {}
func (NullStats) ETC()             {}
func (NullStats) Recursive()       {}
func (NullStats) TTRead()          {}
func (NullStats) ConstDBRead()     {}
func (NullStats) DBSkip(uint8)     {}
func (NullStats) DBCut(uint8)      {}
func (NullStats) Unknown()         {}
func (NullStats) Exact(uint8)      {}
func (NullStats) Reset()           {}

// eventType enumerates the reasons a position's visit can end (or cross a
// database), used to index EventCounters.
type eventType int

const (
	eventExact eventType = iota
	eventUnknown
	eventTTCut
	eventConstDBCut
	eventTTSkip
	eventConstDBSkip
	eventTTRead
	eventConstDBRead
	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"exact value", "undetermined/cut", "cut by TT", "cut by const db",
	"skipped by TT", "skipped by const db", "TT reads", "const db reads",
}

// EventCounters tallies search events, separately per event type and per
// search phase.
type EventCounters struct {
	counts [eventTypeCount][3]uint64
}

func (c *EventCounters) register(phase SearchPhase, event eventType) {
	c.counts[event][phase]++
}

// NumberOfEvents returns how many times event occurred in phase.
func (c *EventCounters) NumberOfEvents(phase SearchPhase, event eventType) uint64 {
	return c.counts[event][phase]
}

// NodesVisited returns the total number of positions visited, across every
// phase.
func (c *EventCounters) NodesVisited() uint64 {
	return c.ReturnsInPhase(PhasePre) + c.ReturnsInPhase(PhaseETC) + c.ReturnsInPhase(PhaseRecursive)
}

// ReturnsInPhase returns the number of visits that concluded while in phase
// (by any of Exact, Unknown, TT cut or const-db cut).
func (c *EventCounters) ReturnsInPhase(phase SearchPhase) uint64 {
	return c.counts[eventExact][phase] + c.counts[eventUnknown][phase] +
		c.counts[eventTTCut][phase] + c.counts[eventConstDBCut][phase]
}

// Reset zeroes every counter.
func (c *EventCounters) Reset() { *c = EventCounters{} }

func (c *EventCounters) String() string {
	s := fmt.Sprintf("%17s %10s %10s %10s %10s\n", "phase", "pre", "ETC", "recursive", "total")
	for e := eventType(0); e < 4; e++ {
		pre, etc, rec := c.counts[e][0], c.counts[e][1], c.counts[e][2]
		s += fmt.Sprintf("%17s %10d %10d %10d %10d\n", eventNames[e], pre, etc, rec, pre+etc+rec)
	}
	return s
}

// EventStats is a StatsCollector that accumulates EventCounters, tracking
// which database a pending db-read came from so DBSkip/DBCut can be
// attributed correctly.
type EventStats struct {
	Counters      EventCounters
	phase         SearchPhase
	readWasFromTT bool
}

func (s *EventStats) Pre()       { s.phase = PhasePre }
func (s *EventStats) ETC()       { s.phase = PhaseETC }
func (s *EventStats) Recursive() { s.phase = PhaseRecursive }

func (s *EventStats) TTRead() {
	s.Counters.register(s.phase, eventTTRead)
	s.readWasFromTT = true
}

func (s *EventStats) ConstDBRead() {
	s.Counters.register(s.phase, eventConstDBRead)
	s.readWasFromTT = false
}

func (s *EventStats) DBSkip(uint8) {
	if s.readWasFromTT {
		s.Counters.register(s.phase, eventTTSkip)
	} else {
		s.Counters.register(s.phase, eventConstDBSkip)
	}
}

func (s *EventStats) DBCut(uint8) {
	if s.readWasFromTT {
		s.Counters.register(s.phase, eventTTCut)
	} else {
		s.Counters.register(s.phase, eventConstDBCut)
	}
	s.phase = PhaseRecursive
}

func (s *EventStats) Unknown() {
	s.Counters.register(s.phase, eventUnknown)
	s.phase = PhaseRecursive
}

func (s *EventStats) Exact(uint8) {
	s.Counters.register(s.phase, eventExact)
	s.phase = PhaseRecursive
}

func (s *EventStats) Reset() { s.Counters.Reset() }

func (s *EventStats) String() string { return s.Counters.String() }

// MultiStats fans every callback out to each of its collectors, letting a
// caller combine, say, an EventStats with a NimberStats.
type MultiStats []StatsCollector

func (m MultiStats) Pre()             { for _, c := range m { c.Pre() } }
func (m MultiStats) ETC()             { for _, c := range m { c.ETC() } }
func (m MultiStats) Recursive()       { for _, c := range m { c.Recursive() } }
func (m MultiStats) TTRead()          { for _, c := range m { c.TTRead() } }
func (m MultiStats) ConstDBRead()     { for _, c := range m { c.ConstDBRead() } }
func (m MultiStats) DBSkip(v uint8)   { for _, c := range m { c.DBSkip(v) } }
func (m MultiStats) DBCut(v uint8)    { for _, c := range m { c.DBCut(v) } }
func (m MultiStats) Unknown()         { for _, c := range m { c.Unknown() } }
func (m MultiStats) Exact(v uint8)    { for _, c := range m { c.Exact(v) } }
func (m MultiStats) Reset()           { for _, c := range m { c.Reset() } }

// NimberStats tallies, per resulting nimber value, how often it was computed
// versus read from the transposition table or the end-game database.
type NimberStats struct {
	occurrences   []nimberOccurrences
	readWasFromTT bool
}

type nimberOccurrences struct {
	calculated, tt, constDB uint64
}

func (s *NimberStats) enlarge(nimber uint8) *nimberOccurrences {
	for len(s.occurrences) <= int(nimber) {
		s.occurrences = append(s.occurrences, nimberOccurrences{})
	}
	return &s.occurrences[nimber]
}

func (s *NimberStats) Pre()       {}
func (s *NimberStats) ETC()       {}
func (s *NimberStats) Recursive() {}

func (s *NimberStats) TTRead()      { s.readWasFromTT = true }
func (s *NimberStats) ConstDBRead() { s.readWasFromTT = false }

func (s *NimberStats) registerFromDB(nimber uint8) {
	c := s.enlarge(nimber)
	if s.readWasFromTT {
		c.tt++
	} else {
		c.constDB++
	}
}

func (s *NimberStats) DBSkip(nimber uint8) { s.registerFromDB(nimber) }
func (s *NimberStats) DBCut(nimber uint8)  { s.registerFromDB(nimber) }
func (s *NimberStats) Unknown()            {}
func (s *NimberStats) Exact(nimber uint8)  { s.enlarge(nimber).calculated++ }
func (s *NimberStats) Reset()              { s.occurrences = nil }

func (s *NimberStats) String() string {
	out := fmt.Sprintf("%6s %10s %10s %10s\n", "nimber", "calculated", "from: TT", "const db")
	for n, c := range s.occurrences {
		out += fmt.Sprintf("%6d %10d %10d %10d\n", n, c.calculated, c.tt, c.constDB)
	}
	return out
}
