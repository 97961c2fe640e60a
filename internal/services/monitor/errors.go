package monitor

import "errors"

var (
	errEmptyModelName  = errors.New("model name is required")
	errNoMetrics       = errors.New("at least one metric is required")
	errEmptyMetricName = errors.New("metric name must not be empty")
)
