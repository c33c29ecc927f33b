// Package viz renders series for the terminal: line charts through
// asciigraph and styled summary panels through lipgloss.
package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 10
)

// Finite drops NaN and Inf values, which asciigraph cannot scale.
func Finite(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Plot draws data as a line chart. Empty input renders as an empty string.
func Plot(data []float64, caption string, width, height int) string {
	data = Finite(data)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several columns on one chart.
func PlotMany(columns [][]float64, caption string, width, height int) string {
	series := make([][]float64, 0, len(columns))
	for _, c := range columns {
		if f := Finite(c); len(f) > 0 {
			series = append(series, f)
		}
	}
	if len(series) == 0 {
		return ""
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow),
	)
}
