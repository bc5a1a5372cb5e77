package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/maprepl/cmd"
	"github.com/cristianoliveira/maprepl/internal/version"
)

type versionClient interface {
	Version() string
}

type buildVersion struct{}

func (buildVersion) Version() string { return version.String() }

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of maprepl.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintf(c.OutOrStdout(), "maprepl version %s\n", client.Version())
			return nil
		},
	}
}

var versionCmd = NewVersionCmd(buildVersion{})

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
