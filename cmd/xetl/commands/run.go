package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run <job-manifest>",
		Short: "Run the commands described by a job manifest in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.app.Run(cmd.Context(), args[0], dryRun, c.verbose)
			c.exitCode = code
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Load, discover, and bind the job without executing any command")

	return cmd
}
