package semantic

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// LRUCache is a thread-safe least-recently-used cache keyed by the xxhash of a string.
type LRUCache[V any] struct {
	maxSize int
	mu      sync.Mutex
	items   map[uint64]*list.Element
	order   *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry[V any] struct {
	key   uint64
	value V
}

// CacheStats is a snapshot of cache effectiveness
type CacheStats struct {
	Size   int
	Hits   int64
	Misses int64
}

// HitRatio returns hits / lookups, or 0 before the first lookup.
func (s CacheStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NewLRUCache creates a new LRU cache with the specified maximum size
func NewLRUCache[V any](maxSize int) *LRUCache[V] {
	if maxSize <= 0 {
		maxSize = 100 // Default size
	}
	return &LRUCache[V]{
		maxSize: maxSize,
		items:   make(map[uint64]*list.Element),
		order:   list.New(),
	}
}

// Key hashes a cache key.
func Key(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Get retrieves a value from the cache and marks it as recently used
func (c *LRUCache[V]) Get(key string) (V, bool) {
	h := Key(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[h]; ok {
		c.order.MoveToFront(elem)
		c.hits.Add(1)
		return elem.Value.(*cacheEntry[V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set adds or updates a value in the cache
func (c *LRUCache[V]) Set(key string, value V) {
	h := Key(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[h]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry[V]).value = value
		return
	}

	elem := c.order.PushFront(&cacheEntry[V]{key: h, value: value})
	c.items[h] = elem

	// Evict oldest if over capacity
	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry[V]).key)
		}
	}
}

// Clear removes all entries from the cache
func (c *LRUCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[uint64]*list.Element)
	c.order = list.New()
}

// Size returns the current number of items in the cache
func (c *LRUCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of size and hit counters
func (c *LRUCache[V]) Stats() CacheStats {
	return CacheStats{
		Size:   c.Size(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
