package services

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// ownerCache is a per-owner read-through cache. Entries are replaced wholesale on fill and
// dropped on Invalidate; a cached value is never mutated in place.
//
// Every Invalidate bumps the owner's generation. A reader captures the generation before
// reading the store and fills with SetIfGeneration, so a fill that raced an invalidation is dropped.
type ownerCache[V any] struct {
	mu          sync.RWMutex
	ttl         time.Duration
	entries     map[uint]cacheEntry[V]
	generations map[uint]uint64
	now         func() time.Time
}

func newOwnerCache[V any](ttl time.Duration) *ownerCache[V] {
	return &ownerCache[V]{
		ttl:         ttl,
		entries:     make(map[uint]cacheEntry[V]),
		generations: make(map[uint]uint64),
		now:         time.Now,
	}
}

// Get returns the cached value of ownerID if present and not expired
func (c *ownerCache[V]) Get(ownerID uint) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[ownerID]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.Invalidate(ownerID)
		return zero, false
	}
	return entry.value, true
}

// Generation returns the invalidation counter of ownerID
func (c *ownerCache[V]) Generation(ownerID uint) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[ownerID]
}

// SetIfGeneration stores value only if ownerID was not invalidated since gen was read
func (c *ownerCache[V]) SetIfGeneration(ownerID uint, gen uint64, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[ownerID] != gen {
		return false
	}
	c.entries[ownerID] = cacheEntry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
	return true
}

// Invalidate drops the entry of ownerID
func (c *ownerCache[V]) Invalidate(ownerID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ownerID)
	c.generations[ownerID]++
}
