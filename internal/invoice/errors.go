package invoice

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by id finds nothing.
// It is an expected outcome, not a failure.
var ErrNotFound = errors.New("invoice not found")

// StorageError wraps a failure of the underlying store: an unreachable
// database, a disk error or a constraint violation.
type StorageError struct {
	// Op names the repository operation, e.g. "add" or "get by id".
	Op string

	// Err is the driver error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err for operation op. A nil err stays nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError returns true if err is or wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsNotFound returns true if err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
