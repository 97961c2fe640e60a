package audit

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"modelwatch/internal/auditlog"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		Long: `List recent audit entries, newest first.

Examples:
  modelwatch audit list
  modelwatch audit list --limit 50
  modelwatch audit list --endpoint sepsis-prod
  modelwatch audit list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	cmd.Flags().String("endpoint", "", "Only show entries for one endpoint")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := auditlog.Open()
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer repo.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	endpoint, _ := cmd.Flags().GetString("endpoint")

	var entries []auditlog.AuditEntry
	if endpoint != "" {
		entries, err = repo.ListByEndpoint(endpoint, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list audit entries: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tCOMMAND\tENDPOINT\tOUTCOME\tDURATION")
	fmt.Fprintln(w, "----\t-------\t--------\t-------\t--------")
	for _, e := range entries {
		endpoint := e.Endpoint
		if endpoint == "" {
			endpoint = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Command,
			endpoint,
			e.Outcome,
			formatDuration(e.DurationMs),
		)
	}
	return w.Flush()
}

// formatDuration renders elapsed milliseconds at a human scale.
func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", ms)
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
