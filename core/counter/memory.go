package counter

import (
	"context"
	"sync"
)

// MemoryBackend keeps the value in process memory.
type MemoryBackend struct {
	mu    sync.Mutex
	value int64
	set   bool
	err   error
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (m *MemoryBackend) Load(context.Context) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, false, m.err
	}
	return m.value, m.set, nil
}

func (m *MemoryBackend) Save(_ context.Context, v int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.value, m.set = v, true
	return nil
}

// SetErr makes subsequent operations fail with err (nil restores them).
func (m *MemoryBackend) SetErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *MemoryBackend) Close() error { return nil }
