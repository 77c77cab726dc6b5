package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("item not found")
	ErrConflict     = errors.New("item already exists")
	ErrStoreFailure = errors.New("store operation failed")
)
