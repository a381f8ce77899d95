package cache

import (
	lru "github.com/hashicorp/golang-lru"
)

// LRUCache is a bounded, approximate nimber cache: once full, the least
// recently used position is evicted to make room for a new one. Backed by
// hashicorp/golang-lru, which already implements the self-organizing
// touch-on-get behavior GetNimberAndSelfOrganize wants.
type LRUCache[P comparable] struct {
	inner *lru.Cache
}

// NewLRUCache constructs a cache holding at most size entries.
func NewLRUCache[P comparable](size int) (*LRUCache[P], error) {
	inner, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRUCache[P]{inner: inner}, nil
}

func (c *LRUCache[P]) GetNimber(p P) (uint8, bool) {
	v, ok := c.inner.Peek(p)
	if !ok {
		return 0, false
	}
	return v.(uint8), true
}

func (c *LRUCache[P]) GetNimberAndSelfOrganize(p P) (uint8, bool) {
	v, ok := c.inner.Get(p)
	if !ok {
		return 0, false
	}
	return v.(uint8), true
}

func (c *LRUCache[P]) StoreNimber(p P, nimber uint8) {
	c.inner.Add(p, nimber)
}

func (c *LRUCache[P]) Len() int { return c.inner.Len() }
