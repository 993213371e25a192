// Package commands implements the xetl CLI commands.
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/xetl-run/xetl/internal/app"
)

// CLI represents the command line interface for xetl.
type CLI struct {
	app      *app.App
	rootCmd  *cobra.Command
	exitCode int
	verbose  bool
	noColor  bool
}

// New creates a new CLI instance wrapping the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "xetl",
		Short:         "Run ordered sequences of tasks described by a job manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{app: a, rootCmd: rootCmd}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Include each command's resolved env in its log output")
	rootCmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	// no-color must take effect before any subcommand builds its sink, since
	// termenv (progrock's color backend) reads NO_COLOR at first use.
	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if c.noColor {
			os.Setenv("NO_COLOR", "1") //nolint:errcheck
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// ExitCode returns the process exit code for the most recently executed
// run command. It is only meaningful after Execute returns a non-nil
// error originating from domain.ErrCommandFailed; every other path exits 0 or 1.
func (c *CLI) ExitCode() int {
	return c.exitCode
}
