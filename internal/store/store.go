// Package store is the record store: a JSON document per key held in a
// pluggable backend, mirrored in memory, and always replaced whole.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"forge/internal/domain"
)

// ErrNotFound is returned by a Backend when a key has no stored value.
var ErrNotFound = errors.New("store: key not found")

// Backend is the persistent key/value port the store writes through.
type Backend interface {
	Get(ctx context.Context, key domain.Key) ([]byte, error)
	Put(ctx context.Context, key domain.Key, value []byte) error
	Delete(ctx context.Context, key domain.Key) error
}

// Store mirrors backend values in memory. Reads prefer the mirror, so a value
// whose write failed stays authoritative for the rest of the process.
// Corrupt stored values and write failures are logged, never returned.
type Store struct {
	backend Backend

	mu     sync.Mutex
	mirror map[domain.Key][]byte
	locks  map[domain.Key]*sync.Mutex
}

// New returns a Store over backend.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		mirror:  make(map[domain.Key][]byte),
		locks:   make(map[domain.Key]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing writes and read-modify-write cycles
// on key.
func (s *Store) keyLock(key domain.Key) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *Store) raw(ctx context.Context, key domain.Key) ([]byte, bool) {
	s.mu.Lock()
	b, ok := s.mirror[key]
	s.mu.Unlock()
	if ok {
		return b, b != nil
	}

	b, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("store: read %s: %v", key, err)
		}
		return nil, false
	}
	s.mu.Lock()
	s.mirror[key] = b
	s.mu.Unlock()
	return b, true
}

func (s *Store) put(ctx context.Context, key domain.Key, b []byte) {
	s.mu.Lock()
	s.mirror[key] = b
	s.mu.Unlock()
	if err := s.backend.Put(ctx, key, b); err != nil {
		log.Printf("store: write %s: %v", key, err)
	}
}

// Remove drops key from the mirror and the backend. Failures are logged.
func (s *Store) Remove(ctx context.Context, key domain.Key) {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	s.mirror[key] = nil
	s.mu.Unlock()
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("store: delete %s: %v", key, err)
	}
}

// Exists reports whether key holds a value.
func (s *Store) Exists(ctx context.Context, key domain.Key) bool {
	_, ok := s.raw(ctx, key)
	return ok
}

// Load decodes the value under key, returning def when the key is missing or
// its content does not decode.
func Load[T any](ctx context.Context, s *Store, key domain.Key, def T) T {
	b, ok := s.raw(ctx, key)
	if !ok || string(b) == "null" {
		return def
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		log.Printf("store: recovered corrupt value for %s: %v", key, err)
		return def
	}
	return v
}

// Save encodes v and replaces whatever key held. It waits for any
// read-modify-write cycle in progress on key.
func Save[T any](ctx context.Context, s *Store, key domain.Key, v T) {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()
	save(ctx, s, key, v)
}

func save[T any](ctx context.Context, s *Store, key domain.Key, v T) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("store: encode %s: %v", key, err)
		return
	}
	s.put(ctx, key, b)
}

// Update runs a read-modify-write cycle on key while holding the key's lock.
// fn receives the current value (or def) and returns the replacement; when
// fn fails nothing is written.
func Update[T any](ctx context.Context, s *Store, key domain.Key, def T, fn func(T) (T, error)) (T, error) {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	next, err := fn(Load(ctx, s, key, def))
	if err != nil {
		return next, err
	}
	save(ctx, s, key, next)
	return next, nil
}
