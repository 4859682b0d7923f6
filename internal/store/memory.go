package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"dbu-go/internal/dbu"
)

// MemoryStore is an in-memory implementation of the ObjectStore interface,
// useful for testing. It is safe for concurrent use.
type MemoryStore struct {
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores the object bytes under key, overwriting any existing object.
func (m *MemoryStore) Put(_ context.Context, key string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &dbu.TransferError{Key: key, Err: err}
	}
	if int64(len(data)) != size {
		return &dbu.TransferError{Key: key, Err: fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

// Get retrieves the object at key.
func (m *MemoryStore) Get(_ context.Context, key string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return &dbu.TransferError{Key: key, Err: fmt.Errorf("object not found")}
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return &dbu.TransferError{Key: key, Err: err}
	}
	return nil
}

// Validate always succeeds for the in-memory store.
func (m *MemoryStore) Validate(context.Context) error { return nil }

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Keys returns the stored object keys in unspecified order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

var _ dbu.ObjectStore = (*MemoryStore)(nil)
