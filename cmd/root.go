// Package cmd holds the root command shared by the maprepl subcommands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/maprepl/internal/version"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "maprepl",
	Short:         "A terminal REPL for CSV data and a broadband/redlining map.",
	Long:          `A terminal REPL for CSV data and a broadband/redlining map.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	defaultHelp := RootCmd.HelpFunc()
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			defaultHelp(cmd, args)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), helpText(cmd))
	})
}

var commandOrder = []string{"exec", "history", "version"}

func helpText(root *cobra.Command) string {
	var cmdLines []string
	for _, name := range commandOrder {
		for _, c := range root.Commands() {
			if c.Name() == name {
				cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", c.Use, c.Short))
				break
			}
		}
	}

	return fmt.Sprintf(`maprepl v%s

%s

USAGE:
    maprepl               Start the interactive map and REPL
    maprepl [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), root.Short, strings.Join(cmdLines, "\n"))
}
