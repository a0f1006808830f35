package engine

import "errors"

var (
	// ErrKeyNotFound is returned when deleting a key that doesn't exist.
	ErrKeyNotFound = errors.New("key not found")
)
