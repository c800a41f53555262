package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a uniqueness constraint is violated,
	// such as registering a plate or license number twice.
	ErrDuplicate = errors.New("duplicate entity")
)
