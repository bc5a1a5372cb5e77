package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// SimpleFormatter writes "time  command => output" per record.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatRecords implements Formatter.
func (f *SimpleFormatter) FormatRecords(records []Record, writer io.Writer) error {
	for _, r := range records {
		_, err := fmt.Fprintf(writer, "%s  %s => %s\n",
			r.Entry.Time().Format(timeLayout), r.Entry.Command, r.Entry.Result.Flatten())
		if err != nil {
			return err
		}
	}
	return nil
}

// TableFormatter writes records as a column-aligned table.
type TableFormatter struct {
	inner *ExtendedTableFormatter
}

// NewTableFormatter creates a new TableFormatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{inner: NewExtendedTableFormatter()}
}

// FormatRecords implements Formatter.
func (f *TableFormatter) FormatRecords(records []Record, writer io.Writer) error {
	return f.inner.FormatRecords(records, writer)
}

// JSONFormatter writes records as a JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonRecord struct {
	ID        string     `json:"id"`
	Session   string     `json:"session"`
	Command   string     `json:"command"`
	Timestamp string     `json:"timestamp"`
	Message   string     `json:"message,omitempty"`
	Table     [][]string `json:"table,omitempty"`
}

// FormatRecords implements Formatter.
func (f *JSONFormatter) FormatRecords(records []Record, writer io.Writer) error {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			ID:        r.Entry.ID.String(),
			Session:   r.Session,
			Command:   r.Entry.Command,
			Timestamp: r.Entry.Time().UTC().Format(time.RFC3339Nano),
			Message:   r.Entry.Result.Message,
			Table:     r.Entry.Result.Table,
		})
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
