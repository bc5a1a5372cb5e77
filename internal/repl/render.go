package repl

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// OutputPrefix and CommandPrefix label rendered history lines.
const (
	OutputPrefix  = "Output: "
	CommandPrefix = "Command: "
)

// TableWriter renders a table result.
type TableWriter func(w io.Writer, rows [][]string, header bool) error

// WriteHistory renders entries as plain text in the given mode. Tables are
// delegated to writeTable; when nil they are written as tab-separated rows.
func WriteHistory(w io.Writer, entries []Entry, mode Mode, now time.Time, writeTable TableWriter) error {
	if writeTable == nil {
		writeTable = writeTSV
	}
	for _, e := range entries {
		if mode == ModeVerbose {
			if _, err := fmt.Fprintf(w, "%s%s (%s)\n", CommandPrefix, e.Command, Age(e, now)); err != nil {
				return err
			}
		}
		if !e.Result.IsTable() {
			if _, err := fmt.Fprintf(w, "%s%s\n", OutputPrefix, e.Result.Message); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(w, strings.TrimSpace(OutputPrefix)+"\n"); err != nil {
			return err
		}
		if err := writeTable(w, e.Result.Table, e.Result.Header); err != nil {
			return err
		}
	}
	return nil
}

// Age is the humanized time since the entry was recorded.
func Age(e Entry, now time.Time) string {
	t := e.Time()
	if t.After(now) {
		t = now
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func writeTSV(w io.Writer, rows [][]string, _ bool) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
