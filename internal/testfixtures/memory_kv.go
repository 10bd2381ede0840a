package testfixtures

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory key-value blob store for codec and store tests.
// Entries survive across Apply calls; FailNext forces the next Apply to
// return the supplied error.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string][]byte
	nextErr error

	// ApplyCalls counts successful and failed Apply invocations.
	ApplyCalls int
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string][]byte)}
}

// Get returns the stored blob for key.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Apply stores every entry, or fails wholesale when an error is queued.
func (m *MemoryKV) Apply(ctx context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyCalls++
	if m.nextErr != nil {
		err := m.nextErr
		m.nextErr = nil
		return err
	}
	for key, value := range entries {
		m.entries[key] = append([]byte(nil), value...)
	}
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}

// FailNext queues an error for the next Apply call.
func (m *MemoryKV) FailNext(err error) {
	m.mu.Lock()
	m.nextErr = err
	m.mu.Unlock()
}

// Set stores a raw blob directly, bypassing Apply accounting.
func (m *MemoryKV) Set(key string, value []byte) {
	m.mu.Lock()
	m.entries[key] = append([]byte(nil), value...)
	m.mu.Unlock()
}
