package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on uniqueness violations.
	ErrDuplicate = errors.New("duplicate")
)
