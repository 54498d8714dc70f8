// Package memory provides the in-memory reference deployment of the entity
// store contract.
package memory

import (
	"context"
	"sync"

	"planner/internal/storage"
)

// Store keeps entities of one kind in insertion order behind a mutex. The id
// counter is monotonic and survives deletions, so a deleted id is never
// reissued.
//
// The store never shares pointers with its callers: entities are copied on
// the way in and on the way out, so a caller mutating what it was handed
// cannot disturb concurrent readers.
type Store[T any, P storage.Ptr[T]] struct {
	mu     sync.Mutex
	nextID int64
	items  []P
}

// New returns an empty store whose first insert receives id 1.
func New[T any, P storage.Ptr[T]]() *Store[T, P] {
	return &Store[T, P]{nextID: 1}
}

// clone returns a shallow copy of e. Registries replace pointer fields
// rather than writing through them, so a shallow copy is enough to keep
// stored entities private.
func clone[T any, P storage.Ptr[T]](e P) P {
	c := *(*T)(e)
	return P(&c)
}

// Insert assigns the next id to e and stores a copy of it.
func (s *Store[T, P]) Insert(_ context.Context, e P) (P, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.SetEntityID(s.nextID)
	s.nextID++
	s.items = append(s.items, clone[T, P](e))
	return e, nil
}

// Get returns a copy of the entity with the given id.
func (s *Store[T, P]) Get(_ context.Context, id int64) (P, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.items {
		if e.EntityID() == id {
			return clone[T, P](e), nil
		}
	}
	return nil, storage.ErrNotFound
}

// All returns a copy of every entity in insertion order.
func (s *Store[T, P]) All(_ context.Context) ([]P, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]P, len(s.items))
	for i, e := range s.items {
		out[i] = clone[T, P](e)
	}
	return out, nil
}

// Filter returns copies of the entities matching pred, in insertion order.
func (s *Store[T, P]) Filter(_ context.Context, pred func(P) bool) ([]P, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]P, 0)
	for _, e := range s.items {
		if pred(e) {
			out = append(out, clone[T, P](e))
		}
	}
	return out, nil
}

// Update replaces the stored entity carrying the same id as e with a copy
// of e.
func (s *Store[T, P]) Update(_ context.Context, e P) (P, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, held := range s.items {
		if held.EntityID() == e.EntityID() {
			s.items[i] = clone[T, P](e)
			return e, nil
		}
	}
	return nil, storage.ErrNotFound
}

// Delete removes and returns the entity with the given id. The id counter is
// untouched, so the id is never reissued.
func (s *Store[T, P]) Delete(_ context.Context, id int64) (P, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.items {
		if e.EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return e, nil
		}
	}
	return nil, storage.ErrNotFound
}
