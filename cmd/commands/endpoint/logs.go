package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"modelwatch/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

func LogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show per-endpoint evaluation bookkeeping",
		Long: `Show the backend's per-endpoint server logs: when each endpoint was
created, when it last evaluated, and how many evaluations it has run.

Examples:
  modelwatch endpoint logs
  modelwatch endpoint logs -o json`,
		RunE:         runLogs,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	svc, _, err := cmdutil.Service()
	if err != nil {
		return err
	}

	logs, err := svc.ServerLogs(context.Background())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(logs)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(logs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No server logs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENDPOINT\tCREATED\tLAST EVALUATED\tEVALUATIONS")
	fmt.Fprintln(w, "--------\t-------\t--------------\t-----------")
	for _, l := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			l.ServerName,
			l.CreatedAt.Format(time.RFC3339),
			formatEvaluated(l.LastEvaluated),
			l.EvaluationCount,
		)
	}
	return w.Flush()
}

func formatEvaluated(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.RFC3339)
}
