// Package rolling implements the pure numeric transforms behind the
// dashboard's performance views: suffix windowing of a metric's history,
// rolling mean and standard deviation, and trend classification.
//
// Every function is deterministic and allocation-local; nothing here does
// I/O or touches shared state.
package rolling

import (
	"math"

	"modelwatch/internal/domain"
)

// Direction classifies the movement of a metric between its last two
// evaluations.
type Direction string

const (
	Up      Direction = "up"
	Down    Direction = "down"
	Neutral Direction = "neutral"
)

// LimitLastN returns a copy of m whose History, Timestamps, and SampleSizes
// are the last min(n, len) elements, preserving order and the one-to-one
// correspondence across all three arrays. The returned slices are views
// into the originals; callers treat them as read-only.
//
// n <= 0 is a contract violation and fails with *InvalidParameterError.
func LimitLastN(m domain.Metric, n int) (domain.Metric, error) {
	if n <= 0 {
		return domain.Metric{}, &domain.InvalidParameterError{
			Param:  "n",
			Reason: "must be positive",
		}
	}

	if n >= len(m.History) {
		return m, nil
	}

	start := len(m.History) - n
	out := m
	out.History = m.History[start:]
	if start <= len(m.Timestamps) {
		out.Timestamps = m.Timestamps[start:]
	}
	if start <= len(m.SampleSizes) {
		out.SampleSizes = m.SampleSizes[start:]
	}
	return out, nil
}

// Mean computes the arithmetic mean over every full sliding window of the
// given size. The result has length max(0, len(values)-window+1), in input
// order; a window larger than the input yields an empty result, not an
// error. window < 1 fails with *InvalidParameterError.
func Mean(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, &domain.InvalidParameterError{
			Param:  "window",
			Reason: "must be at least 1",
		}
	}
	if window > len(values) {
		return []float64{}, nil
	}

	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}

// Std computes the population standard deviation (divide by window, not
// window-1) over the same sliding windows as Mean, with the same length,
// ordering, and edge-case rules.
func Std(values []float64, window int) ([]float64, error) {
	means, err := Mean(values, window)
	if err != nil {
		return nil, err
	}
	if len(means) == 0 {
		return []float64{}, nil
	}

	out := make([]float64, 0, len(means))
	for i, mean := range means {
		ss := 0.0
		for _, v := range values[i : i+window] {
			d := v - mean
			ss += d * d
		}
		out = append(out, math.Sqrt(ss/float64(window)))
	}
	return out, nil
}

// AlignedTimestamps returns the timestamps matching a rolling series
// computed over the same history: result index k corresponds to
// timestamps[k+window-1], the last timestamp of each window.
func AlignedTimestamps(timestamps []string, window int) []string {
	if window < 1 || window > len(timestamps) {
		return []string{}
	}
	return timestamps[window-1:]
}

// Trend compares the last two elements of history. Fewer than two points
// always yields Neutral; several render paths rely on that to stay safe on
// sparse histories.
func Trend(history []float64) Direction {
	if len(history) < 2 {
		return Neutral
	}

	last := history[len(history)-1]
	prev := history[len(history)-2]
	switch {
	case last > prev:
		return Up
	case last < prev:
		return Down
	default:
		return Neutral
	}
}
