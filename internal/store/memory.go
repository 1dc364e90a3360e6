package store

import (
	"context"
	"sync"
)

// memoryKV is an in-process [KVStore] used for development runs and tests.
// It provides the same last-writer-wins semantics the SQL backends do.
type memoryKV struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryKV returns an empty in-memory [KVStore].
func NewMemoryKV() KVStore {
	return &memoryKV{records: make(map[string][]byte)}
}

// Get implements [KVStore].
func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Copy so callers cannot mutate the stored slice.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put implements [KVStore].
func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.records[key] = stored
	return nil
}

// Delete implements [KVStore].
func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}
