package audit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"modelwatch/internal/auditlog"

	"github.com/spf13/cobra"
)

func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old audit entries",
		Long: `Delete audit entries older than the given age.

The age accepts standard duration syntax plus a day suffix: 90d, 24h,
30m.

Examples:
  modelwatch audit prune --older-than 90d
  modelwatch audit prune --older-than 24h`,
		RunE:         runPrune,
		SilenceUsage: true,
	}

	cmd.Flags().String("older-than", "", "Delete entries older than this age (required)")
	cmd.MarkFlagRequired("older-than")

	return cmd
}

func runPrune(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("older-than")
	age, err := parseAge(raw)
	if err != nil {
		return err
	}

	repo, err := auditlog.Open()
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer repo.Close()

	pruned, err := repo.Prune(age)
	if err != nil {
		return fmt.Errorf("failed to prune audit entries: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d audit entries older than %s.\n", pruned, raw)
	return nil
}

// parseAge parses a duration string, additionally accepting a "d" suffix
// for days since time.ParseDuration stops at hours.
func parseAge(raw string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid age %q: expected a value like 90d or 24h", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid age %q: expected a value like 90d or 24h", raw)
	}
	return d, nil
}
