package nimberset

import "math/bits"

func leadingZeros32(w uint32) int  { return bits.LeadingZeros32(w) }
func leadingZeros64(w uint64) int  { return bits.LeadingZeros64(w) }
func trailingZeros32(w uint32) int { return bits.TrailingZeros32(w) }
func trailingZeros64(w uint64) int { return bits.TrailingZeros64(w) }

// clearLeadingOne clears the highest set bit of w, or returns w unchanged
// if w is zero.
func clearLeadingOne(w uint64) uint64 {
	if w == 0 {
		return 0
	}
	top := 63 - bits.LeadingZeros64(w)
	return w &^ (uint64(1) << top)
}
