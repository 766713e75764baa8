// Package memory provides a map-backed core.Storage for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/notes/pkg/core"
)

// Storage implements core.Storage in memory.
type Storage struct {
	mu    sync.RWMutex
	items map[string][]byte

	// FailWrites makes SetItem and RemoveItem fail, to simulate a full disk.
	FailWrites error
}

// New creates an empty Storage.
func New() *Storage {
	return &Storage{items: make(map[string][]byte)}
}

// GetItem returns a copy of the value stored under key.
func (s *Storage) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// SetItem stores a copy of value under key.
func (s *Storage) SetItem(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.items[key] = append([]byte(nil), value...)
	return nil
}

// RemoveItem deletes key. Missing keys are not an error.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.items, key)
	return nil
}

// Has reports whether key exists.
func (s *Storage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[key]
	return ok
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var _ core.Storage = (*Storage)(nil)
