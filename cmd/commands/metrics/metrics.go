// Package metrics implements the performance inspection commands: the
// per-metric overview cards and the chart-ready time series.
package metrics

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Inspect model performance metrics",
		Long: `Inspect the performance metrics of an evaluation endpoint.

The overview subcommand shows the latest value, threshold, and trend of
every metric on the overall slice. The series subcommand plots metric
histories, optionally limited to the last N evaluations and overlaid
with rolling statistics.`,
	}

	cmd.AddCommand(OverviewCommand())
	cmd.AddCommand(SeriesCommand())

	return cmd
}
