package store

import "errors"

var (
	// ErrNotFound is returned when a row the caller addressed does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert collides with a uniqueness
	// constraint (e.g. a second application for the same scholarship).
	ErrDuplicate = errors.New("duplicate")
)
