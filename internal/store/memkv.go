package store

import "sync"

// Compile-time assertion that MemKV satisfies the KV interface.
var _ KV = (*MemKV)(nil)

// MemKV is a thread-safe, in-memory implementation of [KV].
// It is suitable for tests and for hosts that supply their own persistence
// by snapshotting the engine state externally.
type MemKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemKV returns an initialised [MemKV].
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string][]byte)}
}

// Get implements [KV.Get].
func (m *MemKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set implements [KV.Set].
func (m *MemKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Delete implements [KV.Delete].
func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Close implements [KV.Close]. It is a no-op for the in-memory store.
func (m *MemKV) Close() error { return nil }
