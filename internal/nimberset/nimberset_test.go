package nimberset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet32Basics(t *testing.T) {
	assert.Equal(t, Set32(0), EmptySet32())
	assert.Equal(t, Set32(0), WithLowestSet32(0))
	assert.Equal(t, Set32(0b111), WithLowestSet32(3))
	assert.Equal(t, ^Set32(0), WithLowestSet32(32))
	assert.Equal(t, ^Set32(0), WithLowestSet32(33))

	assert.Equal(t, Set32(0b1101), Set32(0b1101).EachXoredWith(0))
	assert.Equal(t, Set32(0b10), Set32(1).EachXoredWith(1))
	// 0^1=1, 3^1=2, 4^1=5
	assert.Equal(t, Set32(0b100110), Set32(0b11001).EachXoredWith(1))
}

func TestSet256WithLowest(t *testing.T) {
	assert.Equal(t, Set256{}, EmptySet256())
	assert.Equal(t, Set256{}, WithLowestSet256(0))
	assert.Equal(t, Set256{0b111, 0, 0, 0}, WithLowestSet256(3))
	assert.Equal(t, Set256{^uint64(0), 0, 0, 0}, WithLowestSet256(64))

	t65 := WithLowestSet256(65)
	assert.Equal(t, Set256{^uint64(0), 0b1, 0, 0}, t65)

	e := ExtendedWithLowest256(65)
	assert.Equal(t, Set256{^uint64(0), 0, 0, 0}, e.WithoutLargest())

	assert.Equal(t, Set256{^uint64(0), ^uint64(0), 0, 0}, WithLowestSet256(128))
	assert.Equal(t, Set256{^uint64(0), ^uint64(0), 1, 0}, WithLowestSet256(129))
	assert.Equal(t, Set256{^uint64(0), ^uint64(0), ^uint64(0), 0}, WithLowestSet256(192))
	assert.Equal(t, Set256{^uint64(0), ^uint64(0), ^uint64(0), 1}, WithLowestSet256(193))
	full := Set256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	assert.Equal(t, full, WithLowestSet256(256))
	assert.Equal(t, full, WithLowestSet256(257))
}

func TestSet256MexAndAppend(t *testing.T) {
	var s Set256
	assert.Equal(t, uint8(0), s.Mex())
	s.Append(0)
	assert.Equal(t, uint8(1), s.Mex())
	s.Append(1)
	s.Append(2)
	assert.Equal(t, uint8(3), s.Mex())
	s.Remove(1)
	assert.Equal(t, uint8(1), s.Mex())
}

func TestExtendedRemoveLargest(t *testing.T) {
	e := ExtendedWithLowest64(5) // {0,1,2,3,4}
	assert.Equal(t, uint16(0), e.BiggerCount())
	e.RemoveLargest()
	assert.Equal(t, Set64(0b1111), e.Details())

	e2 := ExtendedWithLowest64(70) // details=all ones, biggerCount=6
	assert.Equal(t, uint16(6), e2.BiggerCount())
	e2.RemoveLargest()
	assert.Equal(t, uint16(5), e2.BiggerCount())
	assert.Equal(t, ^Set64(0), e2.Details())
}

func TestUptoLargest(t *testing.T) {
	assert.Equal(t, Set32(0), Set32(0).UptoLargest())
	assert.Equal(t, Set32(0b111), Set32(0b101).UptoLargest())
	assert.Equal(t, Set64(0b1111), Set64(0b1001).UptoLargest())
}
