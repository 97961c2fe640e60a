// Package evaluate implements the command that triggers an evaluation run
// against an endpoint from a local JSON input file.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/auditlog"
	"modelwatch/internal/domain"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <endpoint-name>",
		Short: "Run an evaluation against an endpoint",
		Long: `Run one evaluation against an endpoint from a JSON input file.

The input file carries predicted probabilities, targets, and per-row
metadata columns:

  {
    "preds_prob": [0.9, 0.1, 0.7],
    "target": [1, 0, 1],
    "metadata": {"age": [34, 71, 56]}
  }

Every metadata column must have one value per prediction.

Examples:
  modelwatch evaluate sepsis-prod --input batch.json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runEvaluate,
		SilenceUsage: true,
	}

	cmd.Flags().String("input", "", "Path to the JSON evaluation input (required)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	endpoint := args[0]

	inputPath, _ := cmd.Flags().GetString("input")
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var input domain.EvaluationInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	svc, backend, err := cmdutil.Service()
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := svc.Evaluate(context.Background(), endpoint, input)
	entry := &auditlog.AuditEntry{
		Command:    "evaluate",
		Backend:    backend,
		Endpoint:   endpoint,
		Outcome:    auditlog.Outcome(err),
		DurationMs: auditlog.Since(start),
	}
	if err != nil {
		entry.Detail = err.Error()
	} else {
		entry.ModelName = result.ModelName
		entry.Detail = fmt.Sprintf("%d predictions", len(input.PredsProb))
	}
	auditlog.Record(entry)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Evaluated %s (%s): %d metrics across %d subgroups\n",
		result.EndpointName, result.ModelName, len(result.Metrics), len(result.Subgroups))

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.EvaluationResult)
}
