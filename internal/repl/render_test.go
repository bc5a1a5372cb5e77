package repl

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHistory(t *testing.T) {
	now := time.UnixMilli(1_700_000_060_000)
	entries := []Entry{
		{Command: "mode verbose", Timestamp: 1_700_000_000_000, Result: Text("Mode changed to verbose")},
		{Command: "view", Timestamp: 1_700_000_060_000, Result: Table([][]string{{"a", "b"}, {"c", "d"}}, true)},
	}

	t.Run("brief", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHistory(&buf, entries, ModeBrief, now, nil))
		assert.Equal(t, "Output: Mode changed to verbose\nOutput:\na\tb\nc\td\n", buf.String())
	})

	t.Run("verbose", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHistory(&buf, entries, ModeVerbose, now, nil))
		assert.Equal(t,
			"Command: mode verbose (1 minute ago)\nOutput: Mode changed to verbose\n"+
				"Command: view (now)\nOutput:\na\tb\nc\td\n",
			buf.String())
	})

	t.Run("custom table writer", func(t *testing.T) {
		var buf bytes.Buffer
		var gotHeader bool
		writer := func(w io.Writer, rows [][]string, header bool) error {
			gotHeader = header
			_, err := io.WriteString(w, "<table>\n")
			return err
		}
		require.NoError(t, WriteHistory(&buf, entries[1:], ModeBrief, now, writer))
		assert.True(t, gotHeader)
		assert.Equal(t, "Output:\n<table>\n", buf.String())
	})
}

func TestAgeClampsFutureTimestamps(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	e := Entry{Timestamp: now.Add(time.Hour).UnixMilli()}
	assert.Equal(t, "now", Age(e, now))
}
