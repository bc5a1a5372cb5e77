// Package format provides output formatting for CLI commands: recorded
// history and table results.
package format

import (
	"io"

	"github.com/cristianoliveira/maprepl/internal/repl"
)

// Record is a history entry tagged with the session that recorded it.
type Record struct {
	Session string
	Entry   repl.Entry
}

// Formatter defines the interface for history formatters.
type Formatter interface {
	// FormatRecords formats records and writes them to the writer.
	FormatRecords(records []Record, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays one line per record: time, command and output.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays records in a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON displays records as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}
