package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cristianoliveira/maprepl/internal/colors"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"Time":    19,
			"Session": 8,
			"Command": 28,
			"Output":  40,
		},
		ColumnAlignments: map[string]string{
			"Time":    "left",
			"Session": "left",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in cells.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the cell value from a record.
	Extractor func(Record) string
}

// ExtendedTableFormatter formats history records as a table with
// configurable columns.
type ExtendedTableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewExtendedTableFormatter creates a new ExtendedTableFormatter with default columns.
func NewExtendedTableFormatter() *ExtendedTableFormatter {
	config := DefaultTableConfig()
	column := func(name string, extract func(Record) string) TableColumn {
		return TableColumn{
			Name:      name,
			Width:     config.ColumnWidths[name],
			Alignment: config.ColumnAlignments[name],
			Extractor: extract,
		}
	}
	columns := []TableColumn{
		column("Time", func(r Record) string { return r.Entry.Time().Format(timeLayout) }),
		column("Session", func(r Record) string { return r.Session }),
		column("Command", func(r Record) string { return r.Entry.Command }),
		column("Output", func(r Record) string { return r.Entry.Result.Flatten() }),
	}
	return &ExtendedTableFormatter{
		config:  config,
		columns: columns,
	}
}

// WithColumns adds custom columns to the formatter.
func (f *ExtendedTableFormatter) WithColumns(columns ...TableColumn) *ExtendedTableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatRecords formats records in an extended table format.
func (f *ExtendedTableFormatter) FormatRecords(records []Record, writer io.Writer) error {
	if len(records) == 0 {
		return nil
	}
	if f.config.ShowHeaders {
		names := make([]string, len(f.columns))
		for i, col := range f.columns {
			names[i] = col.Name
		}
		if err := writeHeader(writer, f.config.HeaderColor, names, f.widths()); err != nil {
			return err
		}
	}
	for _, r := range records {
		cells := make([]string, len(f.columns))
		for i, col := range f.columns {
			cells[i] = fitString(col.Extractor(r), col.Width, col.Alignment)
		}
		if err := writeRow(writer, cells); err != nil {
			return err
		}
	}
	return nil
}

func (f *ExtendedTableFormatter) widths() []int {
	w := make([]int, len(f.columns))
	for i, col := range f.columns {
		w[i] = col.Width
	}
	return w
}

// WriteTable writes a command's table result with every column sized to
// its widest cell. When header is set the first row is highlighted and
// underlined.
func WriteTable(writer io.Writer, rows [][]string, header bool) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(writer, "(empty table)")
		return err
	}
	widths := columnWidths(rows)
	body := rows
	if header {
		if err := writeHeader(writer, colors.Blue, rows[0], widths); err != nil {
			return err
		}
		body = rows[1:]
	}
	for _, row := range body {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fitString(cell, widths[i], "left")
		}
		if err := writeRow(writer, cells); err != nil {
			return err
		}
	}
	return nil
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// writeHeader writes column names and a separator line in color.
func writeHeader(writer io.Writer, color string, names []string, widths []int) error {
	header := make([]string, len(names))
	separator := make([]string, len(names))
	for i, name := range names {
		header[i] = fitString(name, widths[i], "left")
		separator[i] = makeSeparator(widths[i])
	}
	for _, line := range [][]string{header, separator} {
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", color, strings.TrimRight(strings.Join(line, "  "), " "), colors.Reset); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(writer io.Writer, cells []string) error {
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// Helper functions

// fitString pads s to width cells with the given alignment, truncating
// with "..." when it does not fit.
func fitString(s string, width int, alignment string) string {
	w := runewidth.StringWidth(s)
	if w > width {
		return runewidth.Truncate(s, width, "...")
	}
	pad := width - w
	switch alignment {
	case "right":
		return strings.Repeat(" ", pad) + s
	case "center":
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default: // left
		return s + strings.Repeat(" ", pad)
	}
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
