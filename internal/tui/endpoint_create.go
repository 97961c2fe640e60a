package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"modelwatch/internal/domain"
	"modelwatch/internal/util"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// metricChoices are the evaluation metrics the wizard offers. Every one of
// them is a binary-classification metric; the backend also accepts
// multiclass and multilabel variants via the non-interactive flag path.
var metricChoices = []string{
	"binary_auroc",
	"binary_accuracy",
	"binary_precision",
	"binary_recall",
	"binary_f1_score",
	"binary_average_precision",
	"binary_specificity",
	"binary_mcc",
}

// CreateEndpointForm runs an interactive wizard that collects an endpoint
// configuration: name, monitored model, and the metrics to compute.
// Prefilled fields are kept as defaults so flag-driven invocations can
// fall through to the wizard for whatever is missing.
func CreateEndpointForm(prefill domain.EndpointConfig) (*domain.EndpointConfig, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	cfg := prefill
	selected := make([]string, 0, len(cfg.Metrics))
	for _, spec := range cfg.Metrics {
		selected = append(selected, spec.Name)
	}

	nameField := huh.NewInput().
		Title("Endpoint name").
		Description("Identifies this evaluation endpoint on the backend").
		Value(&cfg.EndpointName).
		Validate(func(value string) error {
			return util.ValidateEndpointName(strings.TrimSpace(value))
		})

	modelField := huh.NewInput().
		Title("Model name").
		Description("The deployed model this endpoint monitors").
		Value(&cfg.ModelName).
		Validate(func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("model name is required")
			}
			return nil
		})

	descField := huh.NewInput().
		Title("Model description").
		Description("Optional free-text shown in the endpoint list").
		Value(&cfg.ModelDescription)

	metricOpts := make([]huh.Option[string], 0, len(metricChoices))
	for _, name := range metricChoices {
		metricOpts = append(metricOpts, huh.NewOption(name, name))
	}

	metricsField := huh.NewMultiSelect[string]().
		Title("Evaluation metrics").
		Options(metricOpts...).
		Value(&selected).
		Validate(func(values []string) error {
			if len(values) == 0 {
				return errors.New("select at least one metric")
			}
			return nil
		})

	confirm := true
	confirmField := huh.NewConfirm().
		Title("Create this endpoint?").
		Affirmative("Create").
		Negative("Cancel").
		Value(&confirm)

	if err := runForm(accessible,
		huh.NewGroup(nameField, modelField, descField),
		huh.NewGroup(metricsField),
		huh.NewGroup(confirmField),
	); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, ErrAborted
	}

	cfg.EndpointName = strings.TrimSpace(cfg.EndpointName)
	cfg.ModelName = strings.TrimSpace(cfg.ModelName)
	cfg.Metrics = cfg.Metrics[:0]
	for _, name := range selected {
		cfg.Metrics = append(cfg.Metrics, domain.MetricSpec{Name: name, Type: "binary"})
	}

	return &cfg, nil
}

// ConfirmDelete asks the user to confirm removing an endpoint.
func ConfirmDelete(endpointName string) (bool, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	confirmed := false
	field := huh.NewConfirm().
		Title(fmt.Sprintf("Delete evaluation endpoint %q?", endpointName)).
		Description("Its configuration and evaluation bookkeeping are removed from the backend.").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirmed)

	if err := runForm(accessible, huh.NewGroup(field)); err != nil {
		if errors.Is(err, ErrAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
