// Package commands implements the CLI commands for the ridx index tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.ridx.dev/ridx/internal/app"
	"go.ridx.dev/ridx/internal/build"
)

// CLI represents the command line interface for ridx.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Watch(ctx context.Context, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ridx",
		Short:         "An incremental equal-weight index calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newComputeCmd())
	rootCmd.AddCommand(c.newWatchCmd())
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions reads the flags shared by compute and watch.
func runOptions(cmd *cobra.Command) app.RunOptions {
	configDir, _ := cmd.Flags().GetString("config")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	parallelism, _ := cmd.Flags().GetInt("parallelism")
	trace, _ := cmd.Flags().GetBool("trace")
	outputMode, _ := cmd.Flags().GetString("log-format")

	return app.RunOptions{
		Config:      configDir,
		From:        from,
		To:          to,
		Output:      output,
		Format:      format,
		Parallelism: parallelism,
		Trace:       trace,
		OutputMode:  outputMode,
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Directory to start the ridx.yaml search from (default: current directory)")
	cmd.Flags().String("from", "", "First date of the computed range (YYYY-MM-DD, default: seed date)")
	cmd.Flags().String("to", "", "Last date of the computed range (YYYY-MM-DD, default: last calendar date)")
	cmd.Flags().StringP("output", "o", "", "Output file (overrides the configured path)")
	cmd.Flags().StringP("format", "f", "", "Output format: csv or sqlite (overrides the configured format)")
	cmd.Flags().IntP("parallelism", "p", 0, "Max concurrent date computations (overrides the configured value)")
	cmd.Flags().Bool("trace", false, "Log computation spans and durations")
	cmd.Flags().String("log-format", "auto", "Log rendering: auto, styled, or json")
}
