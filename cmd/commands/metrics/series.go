package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/present"
	"modelwatch/internal/tui/components"

	"github.com/spf13/cobra"
)

// chartWidth is the fixed width for non-interactive chart output.
const chartWidth = 72

func SeriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series [endpoint-name]",
		Short: "Plot metric histories for an endpoint",
		Long: `Plot metric evaluation histories as terminal charts.

By default every metric on the overall slice is plotted over its full
history. --metrics and --slices narrow the cross product, --last limits
the history to the most recent N evaluations, and --rolling overlays a
rolling mean with one-standard-deviation bands.

Examples:
  modelwatch metrics series sepsis-prod
  modelwatch metrics series sepsis-prod --metrics binary_auroc --last 10
  modelwatch metrics series sepsis-prod --slices overall,age:under_40 --rolling --window 5
  modelwatch metrics series sepsis-prod -o json`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runSeries,
		SilenceUsage: true,
	}

	cmd.Flags().String("model", "", "Restrict to one model on the endpoint")
	cmd.Flags().String("metrics", "", "Comma-separated metric names (default: all)")
	cmd.Flags().String("slices", "", "Comma-separated slice names (default: overall)")
	cmd.Flags().Int("last", 0, "Limit to the last N evaluations (0 = all)")
	cmd.Flags().Bool("rolling", false, "Overlay rolling mean and std bands")
	cmd.Flags().Int("window", 3, "Rolling window size")
	cmd.Flags().StringP("output", "o", "chart", "Output format: chart or json")

	return cmd
}

func runSeries(cmd *cobra.Command, args []string) error {
	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}
	endpoint, err := cmdutil.DefaultEndpoint(explicit)
	if err != nil {
		return err
	}

	svc, _, err := cmdutil.Service()
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	snap, err := svc.Overview(context.Background(), endpoint, model)
	if err != nil {
		return err
	}

	sel := present.DefaultSelection(snap)
	if csv, _ := cmd.Flags().GetString("metrics"); csv != "" {
		sel.Metrics = splitCSV(csv)
	}
	if csv, _ := cmd.Flags().GetString("slices"); csv != "" {
		sel.Slices = splitCSV(csv)
	}
	sel.LastN, _ = cmd.Flags().GetInt("last")
	sel.ShowRollingStats, _ = cmd.Flags().GetBool("rolling")
	sel.RollingWindow, _ = cmd.Flags().GetInt("window")
	sel = sel.Clamp(snap)

	series, err := present.BuildTimeSeries(snap, sel)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(series)
	}
	if output != "chart" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(series) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No evaluation data for %s yet.\n", endpoint)
		return nil
	}

	for _, group := range groupSeries(series) {
		fmt.Fprintln(cmd.OutOrStdout(), components.SeriesChart(group[0].Label, group, chartWidth))
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// groupSeries splits a flat series list into chart groups: each raw series
// starts a group and carries its rolling overlays with it.
func groupSeries(series []present.Series) [][]present.Series {
	var groups [][]present.Series
	for _, s := range series {
		if s.Kind == present.SeriesRaw || len(groups) == 0 {
			groups = append(groups, []present.Series{s})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], s)
	}
	return groups
}

func splitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
