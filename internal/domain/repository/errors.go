package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned on a unique-email violation at signup.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrVersionConflict is returned when an aggregate save loses a
	// compare-and-swap against a concurrent writer. Callers reload and retry.
	ErrVersionConflict = errors.New("aggregate version conflict")
)
