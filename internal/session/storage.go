package session

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"
)

// Storage persists the session keys. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases any resources held by the storage.
	Close() error
}

// Error represents an error type for session storage operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key is not stored.
	ErrNotFound Error = "session key not found"

	// ErrClosed indicates the storage has been closed.
	ErrClosed Error = "session storage closed"
)

// MemoryStorage keeps the session in process memory only.
type MemoryStorage struct {
	mu     sync.RWMutex
	data   map[string]string
	closed atomic.Bool
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

// Get retrieves a value.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	if m.closed.Load() {
		return "", ErrClosed
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores a value.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

// Delete removes keys.
func (m *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.mu.Lock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of everything stored.
func (m *MemoryStorage) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}

// Close marks the storage closed.
func (m *MemoryStorage) Close() error {
	m.closed.Store(true)
	return nil
}
