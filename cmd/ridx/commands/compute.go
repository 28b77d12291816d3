package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the index series and write it to the configured sink",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), runOptions(cmd))
		},
	}
	addRunFlags(cmd)
	return cmd
}
