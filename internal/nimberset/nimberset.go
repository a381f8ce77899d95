// Package nimberset implements fixed-width bitsets of small nimbers, used by
// the recursion engine to track candidate and potential-nimber sets during
// pruning. Four widths are provided (32, 64, 128 and 256 bits); all share the
// same operation vocabulary but are distinct concrete types so that the
// common case (a handful of successors, width 32 or 64) avoids the overhead
// of the widest representation.
package nimberset

import "math/bits"

// Set32 is a set of nimbers in 0..31, backed by a single machine word.
type Set32 uint32

// Set64 is a set of nimbers in 0..63, backed by a single machine word.
type Set64 uint64

// EmptySet32 returns the empty set.
func EmptySet32() Set32 { return 0 }

// EmptySet64 returns the empty set.
func EmptySet64() Set64 { return 0 }

// SingletonSet32 returns the set containing only n.
func SingletonSet32(n uint8) Set32 { return Set32(1) << n }

// SingletonSet64 returns the set containing only n.
func SingletonSet64(n uint8) Set64 { return Set64(1) << n }

// WithLowestSet32 returns {0, ..., n-1}, saturating at the full set if n>=32.
func WithLowestSet32(n uint16) Set32 {
	if n >= 32 {
		return ^Set32(0)
	}
	return Set32(1)<<n - 1
}

// WithLowestSet64 returns {0, ..., n-1}, saturating at the full set if n>=64.
func WithLowestSet64(n uint16) Set64 {
	if n >= 64 {
		return ^Set64(0)
	}
	return Set64(1)<<n - 1
}

func (s Set32) Append(n uint8) Set32  { return s | Set32(1)<<n }
func (s Set64) Append(n uint8) Set64  { return s | Set64(1)<<n }
func (s Set32) Remove(n uint8) Set32  { return s &^ (Set32(1) << n) }
func (s Set64) Remove(n uint8) Set64  { return s &^ (Set64(1) << n) }
func (s Set32) Contains(n uint8) bool { return s&(Set32(1)<<n) != 0 }
func (s Set64) Contains(n uint8) bool { return s&(Set64(1)<<n) != 0 }

// Mex returns the minimum excludant: the smallest nimber not in s.
func (s Set32) Mex() uint8 { return uint8(bits.TrailingZeros32(uint32(^s))) }
func (s Set64) Mex() uint8 { return uint8(bits.TrailingZeros64(uint64(^s))) }

func (s Set32) IntersectedWith(other Set32) Set32 { return s & other }
func (s Set64) IntersectedWith(other Set64) Set64 { return s & other }

// UptoLargest returns {0, ..., max(s)}, i.e. s with every bit below the
// highest set bit also set. The empty set maps to itself.
func (s Set32) UptoLargest() Set32 {
	if s == 0 {
		return 0
	}
	top := 31 - bits.LeadingZeros32(uint32(s))
	return WithLowestSet32(uint16(top) + 1)
}

func (s Set64) UptoLargest() Set64 {
	if s == 0 {
		return 0
	}
	top := 63 - bits.LeadingZeros64(uint64(s))
	return WithLowestSet64(uint16(top) + 1)
}

// EachXoredWith returns {v^nimber : v in s}.
func (s Set32) EachXoredWith(nimber uint8) Set32 {
	if nimber == 0 {
		return s
	}
	var result Set32
	src := s
	for src != 0 {
		v := uint8(bits.TrailingZeros32(uint32(src)))
		result |= Set32(1) << (v ^ nimber)
		src &^= Set32(1) << v
	}
	return result
}

func (s Set64) EachXoredWith(nimber uint8) Set64 {
	if nimber == 0 {
		return s
	}
	var result Set64
	src := s
	for src != 0 {
		v := uint8(bits.TrailingZeros64(uint64(src)))
		result |= Set64(1) << (v ^ nimber)
		src &^= Set64(1) << v
	}
	return result
}
