package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <task-manifest>",
		Short: "Run a task's declared test cases without a full job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.app.Validate(cmd.Context(), args[0], c.verbose)
			if err != nil {
				c.exitCode = 1
				return err
			}

			failures := 0
			for _, r := range results {
				status := "PASS"
				if !r.Passed() {
					status = "FAIL"
					failures++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] test case %d (exit %d)\n", status, r.Index, r.ExitCode) //nolint:errcheck
			}

			if failures > 0 {
				c.exitCode = 1
				return fmt.Errorf("%d of %d test cases failed", failures, len(results))
			}
			return nil
		},
	}
}
