// Package repl implements the command line: a registry of named handlers,
// a dispatcher that records every non-empty line into an append-only
// history, and the built-in data commands.
package repl

import "strings"

// Result is what a handler produces: either a plain message or a table.
type Result struct {
	Message string
	Table   [][]string
	// Header marks the first table row as a header row for rendering.
	Header bool
}

// Text returns a message result.
func Text(msg string) Result {
	return Result{Message: msg}
}

// Table returns a table result. A nil rows slice is normalized to empty.
func Table(rows [][]string, header bool) Result {
	if rows == nil {
		rows = [][]string{}
	}
	return Result{Table: rows, Header: header}
}

// IsTable reports whether the result is a table.
func (r Result) IsTable() bool {
	return r.Table != nil
}

// Flatten concatenates every cell row by row with no separators. Messages
// are returned unchanged.
func (r Result) Flatten() string {
	if !r.IsTable() {
		return r.Message
	}
	var b strings.Builder
	for _, row := range r.Table {
		for _, cell := range row {
			b.WriteString(cell)
		}
	}
	return b.String()
}

func (r Result) String() string {
	return r.Flatten()
}
