package tasklist

import (
	"errors"
	"fmt"

	"tasklist/internal/store"
)

var (
	// ErrInvalidInput is returned for an empty or whitespace-only title. The store is not contacted.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIndexOutOfRange is returned for an index outside [0, Count()); the caller's view is stale.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotLoaded is returned by every operation issued before a successful Load.
	ErrNotLoaded = errors.New("list not loaded")
)

// Store-level kinds, re-exported so collaborators only need this package.
var (
	ErrNotFound         = store.ErrNotFound
	ErrWriteFailed      = store.ErrWriteFailed
	ErrStoreUnavailable = store.ErrStoreUnavailable
)

// IndexError reports a rejected index together with the list length it was checked against.
type IndexError struct {
	Index int
	Count int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Count)
}

func (e IndexError) Unwrap() error { return ErrIndexOutOfRange }

func errEmptyTitle() error {
	return fmt.Errorf("%w: title is empty", ErrInvalidInput)
}
