package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)
