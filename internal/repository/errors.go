package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStaleStatus is returned when a guarded status update matched no
	// row, meaning another writer changed the ride status first.
	ErrStaleStatus = errors.New("ride status changed concurrently")
)
