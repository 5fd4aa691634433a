package repository

import "errors"

var (
	// ErrNotFound indicates that no row matched the requested account or customer id.
	ErrNotFound = errors.New("record not found")
	// ErrLockTimeout indicates the store gave up waiting for a row lock held by
	// another in-flight transaction. The operation may be retried.
	ErrLockTimeout = errors.New("timed out waiting for row lock")
	// ErrNoRowsAffected indicates a write that was expected to touch at least one
	// row touched none.
	ErrNoRowsAffected = errors.New("no rows affected")
)
