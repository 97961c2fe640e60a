package model

import (
	"context"
	"encoding/json"
	"fmt"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/domain"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <model-name>",
		Short: "Show combined health and safety for a model",
		Long: `Fetch the health and safety snapshots for a monitored model in one go.

Examples:
  modelwatch model status sepsis-xgb
  modelwatch model status sepsis-xgb -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runStatus,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// modelStatus is the combined JSON shape of the status command.
type modelStatus struct {
	ModelName string              `json:"model_name"`
	Safety    *domain.ModelSafety `json:"safety"`
	Health    *domain.ModelHealth `json:"health"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, _, err := cmdutil.Service()
	if err != nil {
		return err
	}

	modelName := args[0]
	status := modelStatus{ModelName: modelName}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		status.Safety, err = svc.Safety(ctx, modelName)
		return err
	})
	g.Go(func() error {
		var err error
		status.Health, err = svc.Health(ctx, modelName)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Model: %s\n\n", modelName)
	printSafety(cmd, status.Safety)
	fmt.Fprintln(cmd.OutOrStdout())
	printHealth(cmd, status.Health)
	return nil
}
