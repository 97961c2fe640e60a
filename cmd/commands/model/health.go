package model

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/domain"

	"github.com/spf13/cobra"
)

func HealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health <model-name>",
		Short: "Show operational health checks for a model",
		Long: `Show the backend's operational health checks for a monitored model:
latency, throughput, and whatever else the deployment reports, each with
a met/not-met status.

Examples:
  modelwatch model health sepsis-xgb
  modelwatch model health sepsis-xgb -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runHealth,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runHealth(cmd *cobra.Command, args []string) error {
	svc, _, err := cmdutil.Service()
	if err != nil {
		return err
	}

	health, err := svc.Health(context.Background(), args[0])
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(health)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	printHealth(cmd, health)
	return nil
}

func printHealth(cmd *cobra.Command, health *domain.ModelHealth) {
	if !health.LastEvaluated.IsZero() {
		fmt.Fprintf(cmd.OutOrStdout(), "Last evaluated: %s\n\n", health.LastEvaluated.Format(time.RFC1123))
	}

	if len(health.Metrics) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No health checks reported.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tVALUE\tUNIT\tSTATUS")
	fmt.Fprintln(w, "-----\t-----\t----\t------")
	for _, m := range health.Metrics {
		unit := m.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", m.Name, m.Value, unit, m.Status)
	}
	w.Flush()
}
