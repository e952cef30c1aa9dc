package settings

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV for tests and the headless harness.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV { return &MemoryKV{values: map[string]string{}} }

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) SetMany(_ context.Context, kv map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range kv {
		m.values[k] = v
	}
	return nil
}
