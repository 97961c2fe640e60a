package domain

import "time"

// ModelSafety is the safety snapshot for a monitored model. It reuses the
// Metric shape in a different envelope: the backend supplies the recency
// flag and overall status, the client does not recompute them.
//
// LastEvaluated is nil when the model has never been evaluated.
type ModelSafety struct {
	Metrics             []Metric   `json:"metrics"`
	LastEvaluated       *time.Time `json:"last_evaluated"`
	IsRecentlyEvaluated bool       `json:"is_recently_evaluated"`
	OverallStatus       string     `json:"overall_status"`
}

// HealthMetric is a single scalar health measurement with its unit and a
// met/not-met status, as reported by the backend.
type HealthMetric struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Status string  `json:"status"`
}

// ModelHealth is the health snapshot for a monitored model.
type ModelHealth struct {
	Metrics       []HealthMetric `json:"metrics"`
	LastEvaluated time.Time      `json:"last_evaluated"`
}
