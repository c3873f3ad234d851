// Package cache provides caching utilities for inference results.
package cache

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache provides thread-safe LRU caching keyed by content digests.
type Cache[V any] struct {
	cache  *lru.Cache[uint64, V]
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new LRU cache with the specified maximum number of items.
func New[V any](maxItems int) (*Cache[V], error) {
	c, err := lru.New[uint64, V](maxItems)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{cache: c}, nil
}

// Get retrieves a value by key.
// Returns the value and true if found, the zero value and false otherwise.
func (c *Cache[V]) Get(key uint64) (V, bool) {
	v, ok := c.cache.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Put adds or updates a value in the cache.
func (c *Cache[V]) Put(key uint64, v V) {
	c.cache.Add(key, v)
}

// Len returns the current number of items in the cache.
func (c *Cache[V]) Len() int {
	return c.cache.Len()
}

// Stats returns the number of hits and misses since creation.
func (c *Cache[V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Key digests an ordered list of parts. Each part is length-prefixed so
// ("ab", "c") and ("a", "bc") produce different keys.
func Key(parts ...string) uint64 {
	d := xxhash.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = d.Write(n[:])
		_, _ = d.WriteString(p)
	}
	return d.Sum64()
}
