// Package storage defines the per-kind entity store contract shared by the
// in-memory and sqlite backends.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get, Update and Delete when no entity with the
// requested id exists in the store.
var ErrNotFound = errors.New("entity not found")

// Entity is anything a store can hold. Stores own id assignment and call
// SetEntityID exactly once, on insert.
type Entity interface {
	EntityID() int64
	SetEntityID(int64)
}

// Ptr constrains a store's element to a pointer to T, letting backends
// allocate and copy entities without knowing the concrete kind.
type Ptr[T any] interface {
	*T
	Entity
}

// Store is an append/lookup/filter repository for one entity kind.
//
// Ids are assigned from a per-store monotonic counter starting at 1 and are
// never reused, even after deletions. All and Filter return entities in
// insertion order.
type Store[T Entity] interface {
	// Insert assigns the next id to e, stores it and returns it.
	Insert(ctx context.Context, e T) (T, error)

	// Get returns the entity with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (T, error)

	// All returns every stored entity in insertion order. The slice is
	// never nil.
	All(ctx context.Context) ([]T, error)

	// Filter returns the entities matching pred, in insertion order.
	Filter(ctx context.Context, pred func(T) bool) ([]T, error)

	// Update replaces the stored entity with the same id as e, returning
	// ErrNotFound when the id was never issued or has been deleted.
	Update(ctx context.Context, e T) (T, error)

	// Delete removes and returns the entity with the given id, or
	// ErrNotFound.
	Delete(ctx context.Context, id int64) (T, error)
}
