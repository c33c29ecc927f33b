package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/tslab/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []Point
}

// DelayEmbedding pairs each sample with the one lag steps earlier. For
// Mackey-Glass a lag near tau exposes the attractor.
func DelayEmbedding(x []float64, lag int) (*PhasePortrait2D, error) {
	if lag < 1 {
		return nil, fmt.Errorf("delay embedding: lag=%d: %w", lag, dynamo.ErrInvalidArgument)
	}
	if len(x) <= lag {
		return nil, fmt.Errorf("delay embedding: %d points for lag=%d: %w", len(x), lag, dynamo.ErrInsufficientData)
	}

	portrait := &PhasePortrait2D{
		XLabel: fmt.Sprintf("x(t-%d)", lag),
		YLabel: "x(t)",
		Points: make([]Point, 0, len(x)-lag),
	}
	for t := lag; t < len(x); t++ {
		portrait.Points = append(portrait.Points, Point{X: x[t-lag], Y: x[t]})
	}
	return portrait, nil
}

// PhaseFromColumns plots column yName against column xName.
func PhaseFromColumns(s *dynamo.Series, xName, yName string) (*PhasePortrait2D, error) {
	xs, ys := s.Column(xName), s.Column(yName)
	if xs == nil || ys == nil {
		return nil, fmt.Errorf("phase: columns %q/%q not in %v: %w", xName, yName, s.Names, dynamo.ErrInvalidArgument)
	}

	n := min(len(xs), len(ys))
	portrait := &PhasePortrait2D{XLabel: xName, YLabel: yName, Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		portrait.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return portrait, nil
}

// PoincareFromColumns records (xName, yName) wherever crossName crosses
// threshold upward. Crossings are interpolated linearly between samples.
func PoincareFromColumns(s *dynamo.Series, crossName string, threshold float64, xName, yName string) (*PhasePortrait2D, error) {
	cs, xs, ys := s.Column(crossName), s.Column(xName), s.Column(yName)
	if cs == nil || xs == nil || ys == nil {
		return nil, fmt.Errorf("poincare: columns %q/%q/%q not in %v: %w", crossName, xName, yName, s.Names, dynamo.ErrInvalidArgument)
	}

	section := &PhasePortrait2D{XLabel: xName, YLabel: yName}
	n := min(len(cs), len(xs), len(ys))
	for i := 1; i < n; i++ {
		prev, curr := cs[i-1], cs[i]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			section.Points = append(section.Points, Point{
				X: xs[i-1] + frac*(xs[i]-xs[i-1]),
				Y: ys[i-1] + frac*(ys[i]-ys[i-1]),
			})
		}
	}
	return section, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs := make([]float64, len(portrait.Points))
	ys := make([]float64, len(portrait.Points))
	for i, p := range portrait.Points {
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
