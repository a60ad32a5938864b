package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a mutex-guarded in-process cache. Expired entries are dropped
// lazily when they are read; there is no background sweeper.
//
// Memory is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set implements Cache. The slice is copied so callers may reuse it.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	m.entries[key] = entry{value: v, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

// Len reports the number of stored entries, including expired ones that have
// not been read since they lapsed.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
