package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/maprepl/cmd"
	"github.com/cristianoliveira/maprepl/internal/format"
	"github.com/cristianoliveira/maprepl/internal/repl"
)

type execClient interface {
	Run(ctx context.Context, line string) (repl.Entry, bool, error)
	Entries() []repl.Entry
	Mode() repl.Mode
	Close() error
}

type execOpener func(ctx context.Context) (execClient, error)

// NewExecCmd creates the exec command with explicit dependencies.
func NewExecCmd(open execOpener) *cobra.Command {
	if open == nil {
		panic("NewExecCmd: open dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "exec [file|-]",
		Short: "Run REPL commands from a file or stdin",
		Long: `Run REPL commands non-interactively, one per line, and print the resulting
history. Lines starting with '#' are ignored. Reads stdin when no file or '-'
is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in := c.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("exec: %w", err)
				}
				defer f.Close()
				in = f
			}

			client, err := open(c.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			return runScript(c.Context(), client, in, c.OutOrStdout())
		},
	}
}

// runScript dispatches each line in order, then renders the history.
func runScript(ctx context.Context, client execClient, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, _, err := client.Run(ctx, line); err != nil {
			return fmt.Errorf("exec %q: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("exec: reading input: %w", err)
	}
	return repl.WriteHistory(out, client.Entries(), client.Mode(), time.Now(), format.WriteTable)
}

var execCmd = NewExecCmd(func(ctx context.Context) (execClient, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	return a, nil
})

func init() {
	cmd.RootCmd.AddCommand(execCmd)
}
