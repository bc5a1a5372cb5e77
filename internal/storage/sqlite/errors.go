package sqlite

import "errors"

var (
	// ErrEmptyPath indicates a blank database path.
	ErrEmptyPath = errors.New("sqlite history: db path cannot be empty")
	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("sqlite history: store is closed")
)
