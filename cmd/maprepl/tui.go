package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/maprepl/cmd"
	"github.com/cristianoliveira/maprepl/internal/config"
	"github.com/cristianoliveira/maprepl/internal/tui/state"
)

func runTUI(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Warn("closing history store", "error", err.Error())
		}
	}()

	model := state.NewModel(state.Options{
		Dispatcher: a.dispatcher,
		Session:    a.session,
		Controller: a.controller,
		StartView:  state.ParseView(config.Get("start_view", "map")),
		Logger:     a.log,
		Context:    ctx,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func init() {
	cmd.RootCmd.Args = cobra.NoArgs
	cmd.RootCmd.RunE = runTUI
}
