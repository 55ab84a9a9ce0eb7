// apps/go-solver/internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight session layer for solver sessions and referee games,
// where every session owns its own state and nothing is shared between them.
//
// Characteristics:
//   - Stores values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for missing IDs.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store[T any] interface {
	// Save persists or updates a value under id.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves a value by ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (T, error)

	// Delete removes a value; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports the number of stored values.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu    sync.RWMutex // guards items map
	items map[string]T
}

// NewMemory constructs a new in-memory Store.
func NewMemory[T any]() Store[T] {
	return &memory[T]{items: make(map[string]T)}
}

// Save adds or updates the value in the map.
func (m *memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	return nil
}

// Get looks up a value by ID.
func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

// Delete removes the value for id.
func (m *memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// Len reports the number of stored values.
func (m *memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
