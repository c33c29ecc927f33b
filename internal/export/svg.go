// Package export renders series and phase portraits as standalone SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/tslab/internal/analysis"
	"github.com/san-kum/tslab/internal/viz"
	"gonum.org/v1/gonum/floats"
)

// SeriesToSVG draws values as a polyline against their sample index.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	values = viz.Finite(values)
	points := make([]analysis.Point, len(values))
	for i, v := range values {
		points[i] = analysis.Point{X: float64(i), Y: v}
	}
	return TrajectoryToSVG(points, width, height, strokeColor)
}

// TrajectoryToSVG creates an SVG path through points, scaled to fit with
// 10% padding. Fewer than two points render as an empty string.
func TrajectoryToSVG(points []analysis.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
