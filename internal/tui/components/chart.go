package components

import (
	"fmt"

	"modelwatch/internal/present"
	"modelwatch/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// chartHeight is the fixed height for all metric charts.
const chartHeight = 8

// sparklineHeight is the compact height used on overview cards.
const sparklineHeight = 3

// SeriesChart renders a group of chart series (one raw line plus optional
// rolling-statistics overlays) as a single overlaid plot. Returns a muted
// placeholder if every series is empty.
func SeriesChart(label string, group []present.Series, width int) string {
	var data [][]float64
	var legends []string
	for _, s := range group {
		if len(s.Values) == 0 {
			continue
		}
		data = append(data, s.Values)
		legends = append(legends, s.Label)
	}
	if len(data) == 0 {
		return styles.MutedText.Render(label + ": no data")
	}

	// Reserve space for Y-axis labels (number + " ┤" ≈ 9 chars).
	plotWidth := width - 9
	if plotWidth < 10 {
		plotWidth = 10
	}

	chart := asciigraph.PlotMany(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(seriesColors(group)...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.LabelColor(asciigraph.Default),
	)

	// Summary line: latest, min, max of the raw series.
	var summary string
	for _, s := range group {
		if s.Kind != present.SeriesRaw || len(s.Values) == 0 {
			continue
		}
		latest := s.Values[len(s.Values)-1]
		lo, hi := minMax(s.Values)
		summary = styles.MutedText.Render(
			fmt.Sprintf("  latest: %.3f  min: %.3f  max: %.3f  n: %d", latest, lo, hi, len(s.Values)))
		break
	}

	header := styles.Label.Render(label)
	return lipgloss.JoinVertical(lipgloss.Left, header, chart, summary)
}

// seriesColors maps series kinds to plot colors: raw in blue, the rolling
// mean in coral, the band edges uncolored.
func seriesColors(group []present.Series) []asciigraph.AnsiColor {
	var colors []asciigraph.AnsiColor
	for _, s := range group {
		if len(s.Values) == 0 {
			continue
		}
		switch s.Kind {
		case present.SeriesRaw:
			colors = append(colors, asciigraph.DodgerBlue)
		case present.SeriesRollingMean:
			colors = append(colors, asciigraph.LightCoral)
		default:
			colors = append(colors, asciigraph.Default)
		}
	}
	return colors
}

// Sparkline renders a compact single-series plot for an overview card.
func Sparkline(data []float64, width int) string {
	if len(data) < 2 {
		return styles.MutedText.Render("not enough history")
	}

	plotWidth := width - 9
	if plotWidth < 10 {
		plotWidth = 10
	}

	return asciigraph.Plot(data,
		asciigraph.Height(sparklineHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.DodgerBlue),
		asciigraph.LabelColor(asciigraph.Default),
	)
}

// minMax returns the minimum and maximum values from a slice.
func minMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
