package repl

import "errors"

var (
	// ErrInvalidName is returned when a command name is empty or contains whitespace.
	ErrInvalidName = errors.New("repl: invalid command name")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("repl: nil handler")
	// ErrUnknownTarget is returned when an alias points at an unregistered command.
	ErrUnknownTarget = errors.New("repl: unknown alias target")
	// ErrAliasCycle is returned when an alias would resolve to itself.
	ErrAliasCycle = errors.New("repl: alias cycle")
	// ErrInvalidExpression wraps expression compile failures.
	ErrInvalidExpression = errors.New("repl: invalid expression")
	// ErrDuplicateEntry is returned when an entry id is appended twice.
	ErrDuplicateEntry = errors.New("repl: duplicate history entry")
)
