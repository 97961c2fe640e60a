package domain

import "time"

// MetricSpec configures one metric an evaluation endpoint computes.
// Type is "binary", "multilabel", or "multiclass".
type MetricSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SubgroupSpec configures a named population slice. Condition maps feature
// names to the backend's slicing condition for that feature.
type SubgroupSpec struct {
	Name      string         `json:"name"`
	Condition map[string]any `json:"condition"`
}

// EndpointConfig is the full configuration for creating an evaluation
// endpoint: the monitored model, the metrics to compute, and optional
// subgroup slices.
type EndpointConfig struct {
	EndpointName     string         `json:"endpoint_name"`
	ModelName        string         `json:"model_name"`
	ModelDescription string         `json:"model_description"`
	Metrics          []MetricSpec   `json:"metrics"`
	Subgroups        []SubgroupSpec `json:"subgroups,omitempty"`
}

// EndpointInfo is the summary the backend returns when listing endpoints.
type EndpointInfo struct {
	EndpointName     string `json:"endpoint_name"`
	ModelName        string `json:"model_name"`
	ModelDescription string `json:"model_description"`
}

// ServerLog is one row of the backend's per-endpoint evaluation bookkeeping.
type ServerLog struct {
	ID              string    `json:"id"`
	ServerName      string    `json:"server_name"`
	CreatedAt       time.Time `json:"created_at"`
	LastEvaluated   time.Time `json:"last_evaluated"`
	EvaluationCount int       `json:"evaluation_count"`
}

// EvaluationInput is the payload for triggering an evaluation run:
// predicted probabilities, targets, and per-row metadata columns.
type EvaluationInput struct {
	PredsProb []float64        `json:"preds_prob"`
	Target    []float64        `json:"target"`
	Metadata  map[string][]any `json:"metadata"`
}

// EvaluationResult is the backend's response to an evaluation run.
type EvaluationResult struct {
	EndpointName     string         `json:"endpoint_name"`
	ModelName        string         `json:"model_name"`
	Metrics          []string       `json:"metrics"`
	Subgroups        []string       `json:"subgroups"`
	EvaluationResult map[string]any `json:"evaluation_result"`
}
