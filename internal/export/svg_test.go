package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/tslab/internal/analysis"
)

func TestTrajectoryToSVG(t *testing.T) {
	svg := TrajectoryToSVG([]analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, 100, 50, "#00ff00")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not a complete svg document:\n%s", svg)
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color missing")
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected 2 line segments, got %d", got)
	}
	// first point sits at the padded lower-left corner
	if !strings.Contains(svg, `d="M8.3,45.8`) {
		t.Errorf("unexpected first point:\n%s", svg)
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{math.NaN(), 1, 2, 3}, 100, 50, "#fff")
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected NaN to be skipped and 2 segments drawn, got %d", got)
	}
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
}
