package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapCache(t *testing.T) {
	c := NewMapCache[uint64]()
	_, ok := c.GetNimber(7)
	assert.False(t, ok)

	c.StoreNimber(7, 3)
	n, ok := c.GetNimber(7)
	assert.True(t, ok)
	assert.Equal(t, uint8(3), n)
	assert.Equal(t, 1, c.Len())
}

func TestLRUCacheEviction(t *testing.T) {
	c, err := NewLRUCache[uint64](2)
	assert.NoError(t, err)

	c.StoreNimber(1, 1)
	c.StoreNimber(2, 2)
	c.GetNimberAndSelfOrganize(1) // touch 1 so 2 is the least-recently-used
	c.StoreNimber(3, 3)           // evicts 2

	_, ok := c.GetNimber(2)
	assert.False(t, ok)

	n, ok := c.GetNimber(1)
	assert.True(t, ok)
	assert.Equal(t, uint8(1), n)

	n, ok = c.GetNimber(3)
	assert.True(t, ok)
	assert.Equal(t, uint8(3), n)
}

func TestFallbackProviders(t *testing.T) {
	first := NewMapCache[uint64]()
	second := NewMapCache[uint64]()
	second.StoreNimber(9, 5)

	fallback := FallbackProviders[uint64]{first, second}
	n, ok := fallback.GetNimber(9)
	assert.True(t, ok)
	assert.Equal(t, uint8(5), n)

	_, ok = fallback.GetNimber(42)
	assert.False(t, ok)
}
