// Package storage provides the string-blob persistence used by the cart
// store to survive app restarts. Adapters share a minimal get/set/remove
// contract so the store does not care whether state lands on disk, in Redis
// or in Postgres.
package storage

import (
	"context"
	"sync"
)

type Store interface {
	// GetItem returns the stored value for key. The second return is false
	// when the key has never been written (not an error).
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore creates an in-memory store. Used in tests and as the
// default when no persistence is configured.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string]string)}
}

func (s *memoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *memoryStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
