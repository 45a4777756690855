// Package cache provides caching mechanisms for geocoding responses
// to reduce calls to rate-limited external services.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store is a byte-oriented key/value cache with per-store expiration.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key using the store's TTL.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases any resources held by the store.
	Close() error
}

// Memory is an in-process Store bounded by entry count and TTL.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory creates an in-memory store holding at most size entries, each
// expiring after ttl. A zero ttl disables expiration.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1000
	}
	return &Memory{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

// Get retrieves an item from the cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

// Set adds an item to the cache.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, value)
	return nil
}

// Len returns the number of live items.
func (m *Memory) Len() int {
	return m.lru.Len()
}

// Close purges the cache.
func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}

// Nop is a Store that never holds anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte) error         { return nil }
func (Nop) Close() error                                      { return nil }
