package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cristianoliveira/maprepl/internal/repl"
)

const emptyHistory = `No commands yet. Type "help" to list commands.`

// HistoryFrame is the input for History.
type HistoryFrame struct {
	Entries []repl.Entry
	Mode    repl.Mode
	Width   int
	Now     time.Time
}

// History renders every entry in insertion order. Brief mode shows only the
// output; verbose mode shows the command line and its age first.
func History(f HistoryFrame) string {
	if len(f.Entries) == 0 {
		return dimStyle.Render(emptyHistory)
	}
	var b strings.Builder
	for i, e := range f.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		if f.Mode == repl.ModeVerbose {
			b.WriteString(commandStyle.Render(repl.CommandPrefix + e.Command))
			b.WriteString(" ")
			b.WriteString(dimStyle.Render(repl.Age(e, f.Now)))
			b.WriteString("\n")
		}
		if e.Result.IsTable() {
			b.WriteString(outputStyle.Render(strings.TrimSpace(repl.OutputPrefix)))
			b.WriteString("\n")
			b.WriteString(Table(e.Result.Table, e.Result.Header, f.Width))
		} else {
			b.WriteString(outputStyle.Width(max(f.Width, 0)).Render(repl.OutputPrefix + e.Result.Message))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Table renders rows with one row per record. When header is set the first
// row is styled as the header.
func Table(rows [][]string, header bool, width int) string {
	if len(rows) == 0 {
		return dimStyle.Render("(empty table)")
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	body := rows
	if header {
		t = t.Headers(rows[0]...)
		body = rows[1:]
	}
	t = t.Rows(body...)
	out := t.String()
	if width > 0 && lipgloss.Width(out) > width {
		t = t.Width(width)
		out = t.String()
	}
	return out
}
