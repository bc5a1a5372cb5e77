package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/maprepl/cmd"
	"github.com/cristianoliveira/maprepl/internal/config"
	"github.com/cristianoliveira/maprepl/internal/format"
	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/storage"
	"github.com/cristianoliveira/maprepl/internal/storage/sqlite"
)

type historyClient interface {
	ListAll(ctx context.Context, limit int) ([]sqlite.Record, error)
	Close() error
}

type historyOpener func() (historyClient, error)

const defaultHistoryLimit = 50

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(open historyOpener) *cobra.Command {
	if open == nil {
		panic("NewHistoryCmd: open dependency cannot be nil")
	}

	var (
		limit        int
		formatOutput string
	)
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded REPL history",
		Long: `List the REPL history persisted by the sqlite backend across sessions,
oldest first.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if limit == 0 {
				limit = config.GetInt("history_limit", defaultHistoryLimit)
			}
			if limit < 0 {
				return fmt.Errorf("history: --limit must be positive, got %d", limit)
			}
			client, err := open()
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}
			defer client.Close()

			records, err := client.ListAll(c.Context(), limit)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}
			if len(records) == 0 {
				console.Info("No history recorded")
				return nil
			}
			rows := make([]format.Record, len(records))
			for i, r := range records {
				rows[i] = format.Record{Session: r.Session, Entry: r.Entry}
			}
			return format.NewFormatter(format.FormatterType(formatOutput)).FormatRecords(rows, c.OutOrStdout())
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 0, "Show at most N most recent entries (default history_limit)")
	historyCmd.Flags().StringVar(&formatOutput, "format", string(format.FormatterTypeTable), "Output format: simple, table or json")
	return historyCmd
}

// noHistory stands in for a database that was never created.
type noHistory struct{}

func (noHistory) ListAll(context.Context, int) ([]sqlite.Record, error) { return nil, nil }
func (noHistory) Close() error                                        { return nil }

// openHistory opens the database at dbPath without creating it.
func openHistory(dbPath string) (historyClient, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return noHistory{}, nil
	}
	store, err := sqlite.Open(dbPath, sqlite.WithLogger(logging.GetGlobal()))
	if err != nil {
		return nil, err
	}
	return store, nil
}

var historyCmd = NewHistoryCmd(func() (historyClient, error) {
	if config.Get("history_backend", storage.BackendMemory) != storage.BackendSQLite {
		console.Warning("history_backend is not sqlite; only previously persisted sessions are listed")
	}
	return openHistory(storage.DBPath())
})

func init() {
	cmd.RootCmd.AddCommand(historyCmd)
}
