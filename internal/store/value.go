package store

import (
	"context"

	"forge/internal/domain"
)

// Value is a typed handle on one key, so callers never touch JSON.
type Value[T any] struct {
	store *Store
	key   domain.Key
	def   func() T
}

// NewValue binds key to a typed handle. def supplies the value returned for
// missing or corrupt content; nil means the zero value.
func NewValue[T any](s *Store, key domain.Key, def func() T) Value[T] {
	if def == nil {
		def = func() T {
			var zero T
			return zero
		}
	}
	return Value[T]{store: s, key: key, def: def}
}

// Key returns the bound key.
func (v Value[T]) Key() domain.Key {
	return v.key
}

// Get returns the current value.
func (v Value[T]) Get(ctx context.Context) T {
	return Load(ctx, v.store, v.key, v.def())
}

// Set replaces the value.
func (v Value[T]) Set(ctx context.Context, val T) {
	Save(ctx, v.store, v.key, val)
}

// Update replaces the value with fn applied to the current one.
func (v Value[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	return Update(ctx, v.store, v.key, v.def(), fn)
}

// Clear removes the value.
func (v Value[T]) Clear(ctx context.Context) {
	v.store.Remove(ctx, v.key)
}

// Log is a Value holding an ordered event sequence.
type Log[E any] struct {
	Value[[]E]
}

// NewLog binds key to an event log that defaults to empty.
func NewLog[E any](s *Store, key domain.Key) Log[E] {
	return Log[E]{NewValue(s, key, func() []E { return []E{} })}
}

// Append adds events to the end of the log.
func (l Log[E]) Append(ctx context.Context, events ...E) ([]E, error) {
	return l.Update(ctx, func(cur []E) ([]E, error) {
		return append(cur, events...), nil
	})
}
