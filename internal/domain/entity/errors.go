package entity

import (
	"errors"
	"fmt"
)

// ErrPersistence matches every PersistenceError via errors.Is.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError reports a store-level failure or a consistency violation,
// such as an insert whose row cannot be read back.
type PersistenceError struct {
	Op  string
	ID  int64
	Err error
}

// Error returns a message naming the failed operation.
func (e *PersistenceError) Error() string {
	switch {
	case e.Err != nil && e.ID != 0:
		return fmt.Sprintf("%s (id=%d): %v", e.Op, e.ID, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.ID != 0:
		return fmt.Sprintf("%s (id=%d): %s", e.Op, e.ID, ErrPersistence)
	default:
		return fmt.Sprintf("%s: %s", e.Op, ErrPersistence)
	}
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersistence) match any PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
