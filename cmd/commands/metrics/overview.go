package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/present"

	"github.com/spf13/cobra"
)

func OverviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview [endpoint-name]",
		Short: "Show the latest metric values for an endpoint",
		Long: `Show one line per metric on the overall slice: latest value, threshold,
pass/fail status, trend over recent evaluations, and sample size.

Without an endpoint argument the configured default-endpoint is used.

Examples:
  modelwatch metrics overview sepsis-prod
  modelwatch metrics overview --model sepsis-xgb
  modelwatch metrics overview -o json`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runOverview,
		SilenceUsage: true,
	}

	cmd.Flags().String("model", "", "Restrict to one model on the endpoint")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runOverview(cmd *cobra.Command, args []string) error {
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

	cards := present.BuildOverviewCards(snap)

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(cards)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(cards) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No evaluation data for %s yet.\n", endpoint)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE\tTHRESHOLD\tSTATUS\tTREND\tN")
	fmt.Fprintln(w, "------\t-----\t---------\t------\t-----\t-")
	for _, c := range cards {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%s\t%s\t%d\n",
			c.DisplayName,
			c.Value,
			c.Threshold,
			passLabel(c.Passed),
			string(c.Trend),
			c.SampleSize,
		)
	}
	return w.Flush()
}

func passLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
