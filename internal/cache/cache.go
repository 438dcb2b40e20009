// Package cache provides a process-wide TTL cache for storage reads.
//
// The chart page re-fetches the full observation set on every view; a short
// TTL bounds how often the database is hit. Writers invalidate synchronously
// after every successful insert so a reader immediately after a write always
// sees the new row.
package cache

import (
	"sync"
	"time"
)

// TTL caches a single value of type T for a fixed duration.
type TTL[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	value     T
	populated bool
	expires   time.Time
}

// NewTTL creates an empty cache with the given lifetime. A non-positive ttl
// disables caching entirely: Get never hits.
func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{ttl: ttl, now: time.Now}
}

// Get returns the cached value and whether it is still fresh.
func (c *TTL[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.populated || c.now().After(c.expires) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Put stores a value, resetting the expiry clock.
func (c *TTL[T]) Put(v T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.populated = true
	c.expires = c.now().Add(c.ttl)
}

// Invalidate discards the cached value. Called synchronously after every
// successful write.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.populated = false
}
