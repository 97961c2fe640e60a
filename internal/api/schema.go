package api

import (
	"encoding/json"
	"fmt"

	"modelwatch/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the two snapshot payloads. The backend is the source of
// truth for the numbers; the schemas only pin the shape so a malformed
// response is rejected at the boundary instead of surfacing as a render
// bug deep in a view.

const metricDefinition = `
	"metric": {
		"type": "object",
		"required": ["name", "slice", "value", "threshold", "passed", "history", "timestamps", "sample_sizes"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"display_name": {"type": "string"},
			"slice": {"type": "string", "minLength": 1},
			"value": {"type": "number"},
			"threshold": {"type": "number"},
			"passed": {"type": "boolean"},
			"history": {"type": "array", "items": {"type": "number"}},
			"timestamps": {"type": "array", "items": {"type": "string"}},
			"sample_sizes": {"type": "array", "items": {"type": "integer"}},
			"tooltip": {"type": "string"}
		}
	}
`

const overviewSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["has_data", "last_n_evals"],
	"properties": {
		"has_data": {"type": "boolean"},
		"last_n_evals": {"type": "integer", "minimum": 0},
		"mean_std_min_evals": {"type": "integer", "minimum": 0},
		"metric_cards": {
			"type": "object",
			"required": ["metrics", "slices", "collection"],
			"properties": {
				"metrics": {"type": "array", "items": {"type": "string"}},
				"slices": {"type": "array", "items": {"type": "string"}},
				"collection": {"type": "array", "items": {"$ref": "#/definitions/metric"}}
			}
		}
	},
	"definitions": {` + metricDefinition + `}
}`

const safetySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["metrics", "last_evaluated", "is_recently_evaluated", "overall_status"],
	"properties": {
		"metrics": {"type": "array", "items": {"$ref": "#/definitions/metric"}},
		"last_evaluated": {"type": ["string", "null"]},
		"is_recently_evaluated": {"type": "boolean"},
		"overall_status": {"type": "string"}
	},
	"definitions": {` + metricDefinition + `}
}`

var (
	overviewSchemaLoader = gojsonschema.NewStringLoader(overviewSchema)
	safetySchemaLoader   = gojsonschema.NewStringLoader(safetySchema)
)

// validateSchema checks raw against the given schema and returns a
// *domain.ValidationError carrying the first violation.
func validateSchema(loader gojsonschema.JSONLoader, raw []byte) error {
	result, err := gojsonschema.Validate(loader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &domain.ValidationError{Violation: err.Error()}
	}
	if result.Valid() {
		return nil
	}
	return &domain.ValidationError{Violation: result.Errors()[0].String()}
}

// decodeOverview validates and decodes an overview snapshot. Either every
// invariant holds on the returned snapshot or an error is returned — no
// partially-valid snapshot escapes.
func decodeOverview(raw []byte) (*domain.OverviewSnapshot, error) {
	if err := validateSchema(overviewSchemaLoader, raw); err != nil {
		return nil, err
	}

	var snap domain.OverviewSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, &domain.ValidationError{Violation: err.Error()}
	}

	if !snap.HasData {
		// A no-data snapshot is a valid, successful result; collection
		// fields are treated as empty regardless of what was sent.
		snap.MetricCards = domain.MetricCards{}
		return &snap, nil
	}

	if err := checkMetricCards(&snap.MetricCards); err != nil {
		return nil, err
	}
	return &snap, nil
}

// checkMetricCards enforces the cross-field invariants the schema cannot
// express: parallel-array lengths, the mandatory overall slice, and
// (name, slice) uniqueness within the collection.
func checkMetricCards(cards *domain.MetricCards) error {
	hasOverall := false
	for _, s := range cards.Slices {
		if s == domain.SliceOverall {
			hasOverall = true
			break
		}
	}
	if !hasOverall {
		return &domain.ValidationError{Violation: `metric_cards.slices is missing the "overall" slice`}
	}

	seen := make(map[[2]string]bool, len(cards.Collection))
	for _, m := range cards.Collection {
		if err := checkMetric(m); err != nil {
			return err
		}
		key := [2]string{m.Name, m.Slice}
		if seen[key] {
			return &domain.ValidationError{
				Violation: fmt.Sprintf("duplicate metric %q for slice %q", m.Name, m.Slice),
			}
		}
		seen[key] = true
	}
	return nil
}

// checkMetric enforces the parallel-array invariant on a single metric.
func checkMetric(m domain.Metric) error {
	if len(m.History) != len(m.Timestamps) || len(m.History) != len(m.SampleSizes) {
		return &domain.ValidationError{
			Violation: fmt.Sprintf(
				"metric %q slice %q: history/timestamps/sample_sizes lengths differ (%d/%d/%d)",
				m.Name, m.Slice, len(m.History), len(m.Timestamps), len(m.SampleSizes)),
		}
	}
	return nil
}

// decodeSafety validates and decodes a model safety snapshot.
func decodeSafety(raw []byte) (*domain.ModelSafety, error) {
	if err := validateSchema(safetySchemaLoader, raw); err != nil {
		return nil, err
	}

	var safety domain.ModelSafety
	if err := json.Unmarshal(raw, &safety); err != nil {
		return nil, &domain.ValidationError{Violation: err.Error()}
	}

	for _, m := range safety.Metrics {
		if err := checkMetric(m); err != nil {
			return nil, err
		}
	}
	return &safety, nil
}
