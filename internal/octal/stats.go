package octal

import "sort"

// NimberStats tracks how often each nimber value has been computed so far,
// the bookkeeping an RC/RC2 split rebuild classifies nimbers by.
type NimberStats struct {
	occurrences []uint32
	max         uint16
}

// Count records one more occurrence of nimber.
func (s *NimberStats) Count(nimber uint16) {
	for uint16(len(s.occurrences)) <= nimber {
		s.occurrences = append(s.occurrences, 0)
	}
	s.occurrences[nimber]++
	if nimber > s.max {
		s.max = nimber
	}
}

// Occurrences returns how many times nimber has been counted.
func (s *NimberStats) Occurrences(nimber uint16) uint32 {
	if int(nimber) >= len(s.occurrences) {
		return 0
	}
	return s.occurrences[nimber]
}

// NimbersFromMostCommon returns every nimber seen so far other than skip,
// ordered most-common first; ties keep ascending nimber order, since the
// sort is stable and the candidates are generated in ascending order.
func (s *NimberStats) NimbersFromMostCommon(skip uint16) []uint16 {
	result := make([]uint16, 0, s.max)
	for nimber := uint16(0); nimber <= s.max; nimber++ {
		if nimber == skip {
			continue
		}
		if s.Occurrences(nimber) != 0 {
			result = append(result, nimber)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return s.Occurrences(result[i]) > s.Occurrences(result[j])
	})
	return result
}
