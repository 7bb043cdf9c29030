// Package memory implements an in-memory backend for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"forge/internal/domain"
	"forge/internal/store"
)

// DB implements an in-memory key/value backend.
type DB struct {
	mu     sync.Mutex
	values map[domain.Key][]byte
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{values: make(map[domain.Key][]byte)}
}

// Ensure interfaces are met.
var _ store.Backend = (*DB)(nil)

// Get returns a copy of the value under key.
func (db *DB) Get(ctx context.Context, key domain.Key) ([]byte, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put replaces the value under key.
func (db *DB) Put(ctx context.Context, key domain.Key, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	db.values[key] = v
	return nil
}

// Delete removes key. Missing keys are not an error.
func (db *DB) Delete(ctx context.Context, key domain.Key) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.values, key)
	return nil
}

// Keys lists the stored keys ordered by their persisted name.
func (db *DB) Keys() []domain.Key {
	db.mu.Lock()
	defer db.mu.Unlock()

	keys := make([]domain.Key, 0, len(db.values))
	for k := range db.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
