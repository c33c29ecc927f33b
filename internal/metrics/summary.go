// Package metrics computes descriptive statistics of a sampled series.
package metrics

import (
	"math"

	"github.com/san-kum/tslab/internal/viz"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Count    int
	Missing  int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Skew     float64
	Kurtosis float64
}

// Describe summarizes the finite values of x; NaN and Inf are counted as
// missing. With no finite values every statistic is NaN.
func Describe(x []float64) Summary {
	finite := viz.Finite(x)
	s := Summary{Count: len(finite), Missing: len(x) - len(finite)}
	if len(finite) == 0 {
		nan := math.NaN()
		s.Mean, s.StdDev, s.Min, s.Max, s.Skew, s.Kurtosis = nan, nan, nan, nan, nan, nan
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)
	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	s.Skew = stat.Skew(finite, nil)
	s.Kurtosis = stat.ExKurtosis(finite, nil)
	return s
}

// Rows renders the summary as labelled lines for viz.Summary.
func (s Summary) Rows(prefix string) []viz.KV {
	return []viz.KV{
		{Key: prefix + "mean", Value: s.Mean},
		{Key: prefix + "std", Value: s.StdDev},
		{Key: prefix + "min", Value: s.Min},
		{Key: prefix + "max", Value: s.Max},
	}
}
