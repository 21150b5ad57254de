package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation references a task id that is not in the store.
	ErrNotFound = errors.New("not found")
	// ErrWriteFailed is returned when a mutation could not be committed. Nothing was written.
	ErrWriteFailed = errors.New("write failed")
	// ErrStoreUnavailable is returned when the database cannot be opened or read.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func notFound(id string) error {
	return fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func writeFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrWriteFailed, err)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
