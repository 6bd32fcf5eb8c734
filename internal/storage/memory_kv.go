package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps payloads in process memory. Used for tests and ephemeral runs.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, name string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[name]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Put(_ context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(payload))
	copy(v, payload)
	m.entries[name] = v
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range names {
		delete(m.entries, n)
	}
	return nil
}
