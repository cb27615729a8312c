// Package cache holds the latest value of one data domain behind a single-writer,
// multi-reader lock.
package cache

import "sync"

// Cache stores one value of T. Exactly one producer writes it; any number of
// readers take copies through Read.
type Cache[T any] struct {
	mu        sync.RWMutex
	value     T
	populated bool
	version   uint64
	equal     func(a, b T) bool
}

// New builds a cache that uses equal to decide whether a write changes anything.
func New[T any](equal func(a, b T) bool) *Cache[T] {
	return &Cache[T]{equal: equal}
}

// NewComparable builds a cache for value types compared with ==.
func NewComparable[T comparable]() *Cache[T] {
	return New(func(a, b T) bool { return a == b })
}

// Read returns the held value and whether it was ever written.
func (c *Cache[T]) Read() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.populated
}

// Version counts the writes that actually happened.
func (c *Cache[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// WriteIfChanged stores v unless it equals the held value and reports whether it did.
func (c *Cache[T]) WriteIfChanged(v T) bool {
	c.mu.RLock()
	same := c.populated && c.equal != nil && c.equal(c.value, v)
	c.mu.RUnlock()
	if same {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// single writer, so nothing changed between the two locks
	c.value = v
	c.populated = true
	c.version++
	return true
}
