package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the project id is not in the index.
	ErrNotFound = errors.New("project not found")
	// ErrDuplicateID indicates a create with an id that is already tracked.
	ErrDuplicateID = errors.New("duplicate project id")
	// ErrCorruptIndex indicates a persisted record failed to deserialize
	// during an index rebuild, so the index cannot be repaired.
	ErrCorruptIndex = errors.New("corrupt project index")
)

// StorageError wraps an underlying read/write failure (disk full, permission
// denied). A failed save leaves the previously committed blob untouched; the
// caller decides whether to retry.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
