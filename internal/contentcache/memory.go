package contentcache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL bounds how long a cached rendering stays valid.
const DefaultTTL = 120 * time.Second

// Memory is an in-process Cache. It is the default when no external cache
// is configured.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates an in-memory cache. A non-positive ttl selects DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get implements Cache. Expired entries are pruned on access.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}

	// Reading keeps a hot entry alive.
	entry.expiresAt = m.now().Add(m.ttl)
	m.entries[key] = entry
	return entry.value, true, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Close implements Cache.
func (m *Memory) Close() error { return nil }
