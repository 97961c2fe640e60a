// Package present turns an overview snapshot plus the user's current
// selections into render-ready cards and chart series. It performs no I/O
// and owns no state; identical inputs always produce identical output.
package present

import (
	"modelwatch/internal/domain"
	"modelwatch/internal/rolling"
)

// sparklineCap bounds the recent-history sparkline on overview cards so
// rendering cost stays constant regardless of how long a model has been
// monitored.
const sparklineCap = 16

// Card is the render-ready summary of one overall-slice metric.
type Card struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Value       float64           `json:"value"`
	Threshold   float64           `json:"threshold"`
	Passed      bool              `json:"passed"`
	Trend       rolling.Direction `json:"trend"`
	Sparkline   []float64         `json:"sparkline"`
	SampleSize  int               `json:"sample_size"`
	Tooltip     string            `json:"tooltip,omitempty"`
}

// SeriesKind distinguishes the raw series from its rolling-statistics
// overlays.
type SeriesKind string

const (
	SeriesRaw         SeriesKind = "raw"
	SeriesRollingMean SeriesKind = "rolling_mean"
	SeriesUpperBand   SeriesKind = "upper_band"
	SeriesLowerBand   SeriesKind = "lower_band"
)

// Series is one chart-ready line: a label, a kind, and aligned
// timestamp/value pairs.
type Series struct {
	Label      string     `json:"label"`
	Metric     string     `json:"metric"`
	Slice      string     `json:"slice"`
	Kind       SeriesKind `json:"kind"`
	Timestamps []string   `json:"timestamps"`
	Values     []float64  `json:"values"`
}

// BuildOverviewCards builds one card per overall-slice metric, ordered by
// the snapshot's metric name order. Metrics without an overall entry are
// skipped.
func BuildOverviewCards(snap *domain.OverviewSnapshot) []Card {
	if snap == nil || !snap.HasData {
		return nil
	}

	cards := make([]Card, 0, len(snap.MetricCards.Metrics))
	for _, name := range snap.MetricCards.Metrics {
		m, ok := snap.Lookup(name, domain.SliceOverall)
		if !ok {
			continue
		}

		spark := m.History
		if len(spark) > sparklineCap {
			limited, err := rolling.LimitLastN(m, sparklineCap)
			if err != nil {
				continue
			}
			spark = limited.History
		}

		sampleSize := 0
		if len(m.SampleSizes) > 0 {
			sampleSize = m.SampleSizes[len(m.SampleSizes)-1]
		}

		cards = append(cards, Card{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Value:       m.Value,
			Threshold:   m.Threshold,
			Passed:      m.Passed,
			Trend:       rolling.Trend(m.History),
			Sparkline:   spark,
			SampleSize:  sampleSize,
			Tooltip:     m.Tooltip,
		})
	}
	return cards
}

// BuildTimeSeries emits chart series for every (metric, slice) pair in the
// cross product of the selection. Pairs absent from the snapshot are
// skipped silently. When rolling statistics are enabled each raw series is
// followed by its mean, upper band (mean+std), and lower band (mean-std),
// aligned to the last timestamp of each window.
//
// An empty selection yields an empty list, never an error. The only error
// this function produces is a propagated *InvalidParameterError when the
// selection carries an invalid rolling window; callers clamp first via
// Selection.Clamp.
func BuildTimeSeries(snap *domain.OverviewSnapshot, sel Selection) ([]Series, error) {
	if snap == nil || !snap.HasData {
		return []Series{}, nil
	}

	out := []Series{}
	for _, metricName := range sel.Metrics {
		for _, sliceName := range sel.Slices {
			m, ok := snap.Lookup(metricName, sliceName)
			if !ok {
				continue
			}

			if sel.LastN > 0 {
				limited, err := rolling.LimitLastN(m, sel.LastN)
				if err != nil {
					return nil, err
				}
				m = limited
			}

			out = append(out, Series{
				Label:      m.Label(),
				Metric:     m.Name,
				Slice:      m.Slice,
				Kind:       SeriesRaw,
				Timestamps: m.Timestamps,
				Values:     m.History,
			})

			if !sel.ShowRollingStats {
				continue
			}

			overlays, err := rollingOverlays(m, sel.RollingWindow)
			if err != nil {
				return nil, err
			}
			out = append(out, overlays...)
		}
	}
	return out, nil
}

// rollingOverlays computes the mean/upper/lower series for one metric.
// A window longer than the metric's history yields no overlays.
func rollingOverlays(m domain.Metric, window int) ([]Series, error) {
	mean, err := rolling.Mean(m.History, window)
	if err != nil {
		return nil, err
	}
	std, err := rolling.Std(m.History, window)
	if err != nil {
		return nil, err
	}
	if len(mean) == 0 {
		return nil, nil
	}

	upper := make([]float64, len(mean))
	lower := make([]float64, len(mean))
	for i := range mean {
		upper[i] = mean[i] + std[i]
		lower[i] = mean[i] - std[i]
	}

	ts := rolling.AlignedTimestamps(m.Timestamps, window)
	label := m.Label()

	return []Series{
		{Label: label + " mean", Metric: m.Name, Slice: m.Slice, Kind: SeriesRollingMean, Timestamps: ts, Values: mean},
		{Label: label + " +std", Metric: m.Name, Slice: m.Slice, Kind: SeriesUpperBand, Timestamps: ts, Values: upper},
		{Label: label + " -std", Metric: m.Name, Slice: m.Slice, Kind: SeriesLowerBand, Timestamps: ts, Values: lower},
	}, nil
}
