package nimberset

// Extended32 pairs a Set32 with a count of additional nimbers known to lie
// beyond the set's width (32). It represents potential membership during BR
// pruning, where values above the bitset width are immaterial individually
// but still count towards "how many candidates remain".
type Extended32 struct {
	details      Set32
	biggerCount uint16
}

type Extended64 struct {
	details      Set64
	biggerCount uint16
}

type Extended128 struct {
	details      Set128
	biggerCount uint16
}

type Extended256 struct {
	details      Set256
	biggerCount uint16
}

func ExtendedWithLowest32(n uint16) Extended32 {
	if n >= 32 {
		return Extended32{details: ^Set32(0), biggerCount: n - 32}
	}
	return Extended32{details: WithLowestSet32(n)}
}

func ExtendedWithLowest64(n uint16) Extended64 {
	if n >= 64 {
		return Extended64{details: ^Set64(0), biggerCount: n - 64}
	}
	return Extended64{details: WithLowestSet64(n)}
}

func ExtendedWithLowest128(n uint16) Extended128 {
	if n >= 128 {
		return Extended128{details: Set128{^uint64(0), ^uint64(0)}, biggerCount: n - 128}
	}
	return Extended128{details: WithLowestSet128(n)}
}

func ExtendedWithLowest256(n uint16) Extended256 {
	if n >= 256 {
		return Extended256{details: Set256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}, biggerCount: n - 256}
	}
	return Extended256{details: WithLowestSet256(n)}
}

// WithoutLargest returns a copy of the concrete (non-overflow) part of self
// with the largest element removed. When biggerCount is positive the
// concrete details are unaffected: the removed element was one of the
// uncounted overflow members.
func (e Extended32) WithoutLargest() Set32 {
	if e.biggerCount != 0 {
		return e.details
	}
	return e.details &^ (Set32(1) << (31 - leadingZeros32(uint32(e.details))))
}

func (e Extended64) WithoutLargest() Set64 {
	if e.biggerCount != 0 {
		return e.details
	}
	return e.details &^ (Set64(1) << (63 - leadingZeros64(uint64(e.details))))
}

func (e Extended128) WithoutLargest() Set128 {
	if e.biggerCount != 0 {
		return e.details
	}
	if e.details[1] != 0 {
		return Set128{e.details[0], clearLeadingOne(e.details[1])}
	}
	return Set128{clearLeadingOne(e.details[0]), 0}
}

func (e Extended256) WithoutLargest() Set256 {
	if e.biggerCount != 0 {
		return e.details
	}
	for lane := 3; lane >= 0; lane-- {
		if e.details[lane] != 0 {
			result := e.details
			result[lane] = clearLeadingOne(result[lane])
			return result
		}
	}
	return e.details
}

// RemoveLargest removes exactly one member from self: the overflow count is
// decremented if positive, otherwise the concrete highest bit is cleared.
func (e *Extended32) RemoveLargest() {
	if e.biggerCount != 0 {
		e.biggerCount--
	} else {
		e.details = e.WithoutLargest()
	}
}

func (e *Extended64) RemoveLargest() {
	if e.biggerCount != 0 {
		e.biggerCount--
	} else {
		e.details = e.WithoutLargest()
	}
}

func (e *Extended128) RemoveLargest() {
	if e.biggerCount != 0 {
		e.biggerCount--
	} else {
		e.details = e.WithoutLargest()
	}
}

func (e *Extended256) RemoveLargest() {
	if e.biggerCount != 0 {
		e.biggerCount--
	} else {
		e.details = e.WithoutLargest()
	}
}

// OnlyElement returns the (or any, if more than one survived) concrete
// element of self. Callers only use this once self is known to be a
// singleton.
func (e Extended32) OnlyElement() uint8  { return uint8(trailingZeros32(uint32(e.details))) }
func (e Extended64) OnlyElement() uint8  { return uint8(trailingZeros64(uint64(e.details))) }
func (e Extended128) OnlyElement() uint8 {
	if e.details[0] != 0 {
		return uint8(trailingZeros64(e.details[0]))
	}
	return uint8(trailingZeros64(e.details[1])) + 64
}
func (e Extended256) OnlyElement() uint8 {
	for lane, word := range e.details {
		if word != 0 {
			return uint8(trailingZeros64(word)) + uint8(lane)*64
		}
	}
	return 0
}

// IsDistinctFrom reports whether self and other share no concrete member.
// The overflow counts are not compared: they represent candidates the
// caller has already decided are out of scope for this comparison.
func (e Extended32) IsDistinctFrom(other Set32) bool   { return e.details&other == 0 }
func (e Extended64) IsDistinctFrom(other Set64) bool   { return e.details&other == 0 }
func (e Extended128) IsDistinctFrom(other Set128) bool {
	return e.details[0]&other[0] == 0 && e.details[1]&other[1] == 0
}
func (e Extended256) IsDistinctFrom(other Set256) bool {
	return e.details[0]&other[0] == 0 && e.details[1]&other[1] == 0 &&
		e.details[2]&other[2] == 0 && e.details[3]&other[3] == 0
}

func (e Extended32) Details() Set32   { return e.details }
func (e Extended64) Details() Set64   { return e.details }
func (e Extended128) Details() Set128 { return e.details }
func (e Extended256) Details() Set256 { return e.details }

func (e Extended32) BiggerCount() uint16  { return e.biggerCount }
func (e Extended64) BiggerCount() uint16  { return e.biggerCount }
func (e Extended128) BiggerCount() uint16 { return e.biggerCount }
func (e Extended256) BiggerCount() uint16 { return e.biggerCount }

// ExtendedFromParts64 reassembles an Extended64 from its concrete details
// and overflow count, for callers (e.g. the BR solver strategy) that need to
// remove a specific nimber from details without disturbing biggerCount.
func ExtendedFromParts64(details Set64, biggerCount uint16) Extended64 {
	return Extended64{details: details, biggerCount: biggerCount}
}
