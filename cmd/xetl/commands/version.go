package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xetl-run/xetl/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), build.Version) //nolint:errcheck
		},
	}
}
