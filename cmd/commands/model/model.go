// Package model implements the per-model inspection commands: health,
// safety, and the combined status view.
package model

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect monitored model health and safety",
		Long: `Inspect a monitored model.

The health subcommand shows operational health checks, safety shows the
clinical safety metrics with their thresholds and the evaluation recency
flag, and status fetches both at once.`,
	}

	cmd.AddCommand(HealthCommand())
	cmd.AddCommand(SafetyCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
