package core

import "errors"

// Common errors.
var (
	// ErrEmptyNote is returned by Add when both title and text are blank.
	ErrEmptyNote = errors.New("note needs a title or text")

	// ErrInvalidKey is returned by storages for keys they cannot address.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrReadOnly is returned by storages opened in read-only mode.
	ErrReadOnly = errors.New("storage is in read-only mode")
)
