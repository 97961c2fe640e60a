package domain

// SliceOverall is the default/aggregate population slice. Every snapshot
// that has data carries it.
const SliceOverall = "overall"

// Metric is one named measurement of model performance for one population
// slice, together with its evaluation history.
//
// History, Timestamps, and SampleSizes are parallel arrays: Timestamps[i]
// is when History[i] was recorded and SampleSizes[i] is the population size
// behind it. They are append-only on the backend and never reordered, so
// the suffix of one is always the suffix of the others.
type Metric struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Slice       string    `json:"slice"`
	Value       float64   `json:"value"`
	Threshold   float64   `json:"threshold"`
	Passed      bool      `json:"passed"`
	History     []float64 `json:"history"`
	Timestamps  []string  `json:"timestamps"`
	SampleSizes []int     `json:"sample_sizes"`
	Tooltip     string    `json:"tooltip"`
}

// Label returns the display form used for chart legends, e.g. "auroc (overall)".
func (m Metric) Label() string {
	return m.Name + " (" + m.Slice + ")"
}

// MetricCards groups the distinct metric and slice names of a snapshot with
// the full per-(metric, slice) collection. The order of Metrics defines the
// default display order.
type MetricCards struct {
	Metrics    []string `json:"metrics"`
	Slices     []string `json:"slices"`
	Collection []Metric `json:"collection"`
}

// OverviewSnapshot is one fetch's worth of performance data for an
// evaluation endpoint/model pair. It is created fresh on every fetch,
// replaced wholesale on refetch, and never mutated in place.
//
// When HasData is false all collection fields are empty and consumers must
// show an empty state instead of aggregating.
type OverviewSnapshot struct {
	HasData         bool        `json:"has_data"`
	LastNEvals      int         `json:"last_n_evals"`
	MeanStdMinEvals int         `json:"mean_std_min_evals"`
	MetricCards     MetricCards `json:"metric_cards"`
}

// Lookup returns the metric for the given (name, slice) pair. At most one
// entry matches; a missing pair is not an error, the caller skips it.
func (s *OverviewSnapshot) Lookup(name, slice string) (Metric, bool) {
	for _, m := range s.MetricCards.Collection {
		if m.Name == name && m.Slice == slice {
			return m, true
		}
	}
	return Metric{}, false
}
