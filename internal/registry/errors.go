package registry

import (
	"errors"
	"fmt"

	"planner/internal/storage"
)

// ValidationError reports a missing or empty required field. The caller can
// correct the input and retry; nothing is recovered internally.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// NotFoundError reports a reference to an id that does not exist.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Field string
	Value string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// notFound converts the store sentinel into a typed domain error.
func notFound(err error, kind string, id int64) error {
	if errors.Is(err, storage.ErrNotFound) {
		return NotFoundError{Kind: kind, ID: id}
	}
	return err
}
