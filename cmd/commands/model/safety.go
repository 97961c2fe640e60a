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

func SafetyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safety <model-name>",
		Short: "Show clinical safety metrics for a model",
		Long: `Show the clinical safety snapshot for a monitored model: each safety
metric against its threshold, the overall status, and whether the model
has been evaluated recently enough to trust the numbers.

Examples:
  modelwatch model safety sepsis-xgb
  modelwatch model safety sepsis-xgb -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runSafety,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runSafety(cmd *cobra.Command, args []string) error {
	svc, _, err := cmdutil.Service()
	if err != nil {
		return err
	}

	safety, err := svc.Safety(context.Background(), args[0])
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(safety)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	printSafety(cmd, safety)
	return nil
}

func printSafety(cmd *cobra.Command, safety *domain.ModelSafety) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Overall status: %s\n", safety.OverallStatus)
	if safety.LastEvaluated == nil {
		fmt.Fprintln(out, "Last evaluated: never")
	} else {
		fmt.Fprintf(out, "Last evaluated: %s (%s)\n",
			safety.LastEvaluated.Format(time.RFC1123),
			recencyLabel(safety.IsRecentlyEvaluated),
		)
	}
	fmt.Fprintln(out)

	if len(safety.Metrics) == 0 {
		fmt.Fprintln(out, "No safety metrics reported.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE\tTHRESHOLD\tSTATUS")
	fmt.Fprintln(w, "------\t-----\t---------\t------")
	for _, m := range safety.Metrics {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%s\n", m.Label(), m.Value, m.Threshold, passLabel(m.Passed))
	}
	w.Flush()
}

func recencyLabel(recent bool) string {
	if recent {
		return "recent"
	}
	return "stale"
}

func passLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
