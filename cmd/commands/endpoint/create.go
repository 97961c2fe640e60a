package endpoint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/auditlog"
	"modelwatch/internal/domain"
	"modelwatch/internal/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an evaluation endpoint",
		Long: `Create an evaluation endpoint on the backend.

When --name, --model, and --metrics are all given the endpoint is created
directly. Otherwise an interactive wizard collects the remaining fields.

Examples:
  modelwatch endpoint create --name sepsis-prod --model sepsis-xgb --metrics binary_auroc,binary_f1_score
  modelwatch endpoint create`,
		RunE:         runCreate,
		SilenceUsage: true,
	}

	cmd.Flags().String("name", "", "Endpoint name")
	cmd.Flags().String("model", "", "Model the endpoint monitors")
	cmd.Flags().String("description", "", "Model description")
	cmd.Flags().String("metrics", "", "Comma-separated metric names")
	cmd.Flags().String("metric-type", "binary", "Metric type: binary, multiclass, or multilabel")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	model, _ := cmd.Flags().GetString("model")
	description, _ := cmd.Flags().GetString("description")
	metricsCSV, _ := cmd.Flags().GetString("metrics")
	metricType, _ := cmd.Flags().GetString("metric-type")

	config := domain.EndpointConfig{
		EndpointName:     strings.TrimSpace(name),
		ModelName:        strings.TrimSpace(model),
		ModelDescription: strings.TrimSpace(description),
		Metrics:          parseMetrics(metricsCSV, metricType),
	}

	interactive := false
	if config.EndpointName == "" || config.ModelName == "" || len(config.Metrics) == 0 {
		interactive = true
		filled, err := tui.CreateEndpointForm(config)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Endpoint creation cancelled.")
				return nil
			}
			return err
		}
		config = *filled
	}

	svc, backend, err := cmdutil.Service()
	if err != nil {
		return err
	}

	start := time.Now()
	var message string
	if interactive {
		spinErr := spinner.New().
			Title("Creating endpoint...").
			Accessible(os.Getenv("ACCESSIBLE") != "").
			Output(cmd.ErrOrStderr()).
			Action(func() {
				message, err = svc.CreateEndpoint(context.Background(), config)
			}).
			Run()
		if spinErr != nil {
			return spinErr
		}
	} else {
		message, err = svc.CreateEndpoint(context.Background(), config)
	}
	auditlog.Record(&auditlog.AuditEntry{
		Command:    "endpoint create",
		Backend:    backend,
		Endpoint:   config.EndpointName,
		ModelName:  config.ModelName,
		Outcome:    auditlog.Outcome(err),
		Detail:     detailFor(err, message),
		DurationMs: auditlog.Since(start),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", message)
	return nil
}

func parseMetrics(csv, metricType string) []domain.MetricSpec {
	var specs []domain.MetricSpec
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		specs = append(specs, domain.MetricSpec{Name: name, Type: metricType})
	}
	return specs
}

func detailFor(err error, message string) string {
	if err != nil {
		return err.Error()
	}
	return message
}
