package main

import (
	"os"

	"github.com/cristianoliveira/maprepl/cmd"
	"github.com/cristianoliveira/maprepl/internal/config"
	"github.com/cristianoliveira/maprepl/internal/errors"
	"github.com/cristianoliveira/maprepl/internal/logging"
)

// console reports CLI failures and warnings.
var console errors.ErrorHandler = errors.NewDefaultCLIHandler()

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run loads configuration, starts the global logger and executes the root
// command with args. The TUI owns the terminal, so startup is only logged
// for subcommands.
func run(args []string, execute func() error) int {
	config.Load()
	if err := logging.InitGlobal(); err != nil {
		console.Warning("logging disabled: " + err.Error())
	}
	defer func() { _ = logging.ShutdownGlobal() }()

	log := logging.GetGlobal().With("component", "startup")
	tui := len(args) == 0
	if !tui {
		log.Info("started", "args", args)
	}

	cmd.RootCmd.SetArgs(args)
	if err := execute(); err != nil {
		log.Error("failed", "error", err.Error())
		console.Error(err.Error())
		return 1
	}
	if !tui {
		log.Info("completed")
	}
	return 0
}
