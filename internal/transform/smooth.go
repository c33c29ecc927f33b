package transform

import (
	"fmt"
	"math"

	"github.com/san-kum/tslab/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

const (
	MethodMean = "mean"
	MethodEWMA = "ewma"
)

// Smooth applies a rolling mean or an exponentially weighted moving average
// over window (the span for EWMA). The output has the same length as x.
func Smooth(x []float64, method string, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("smooth: window=%d: %w", window, dynamo.ErrInvalidArgument)
	}
	switch method {
	case MethodMean:
		return RollingMean(x, window), nil
	case MethodEWMA:
		return EWMA(x, window), nil
	}
	return nil, fmt.Errorf("smooth: %q: %w", method, dynamo.ErrUnknownMethod)
}

// RollingMean averages each full window ending at i; the first window-1
// entries are NaN.
func RollingMean(x []float64, window int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		if i+1 < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = floats.Sum(x[i+1-window:i+1]) / float64(window)
	}
	return out
}

// EWMA is the bias-adjusted exponentially weighted mean with
// alpha = 2/(span+1): each output is sum((1-alpha)^k * x[i-k]) / sum((1-alpha)^k).
func EWMA(x []float64, span int) []float64 {
	alpha := 2.0 / (float64(span) + 1.0)
	decay := 1 - alpha

	out := make([]float64, len(x))
	num, den := 0.0, 0.0
	for i, v := range x {
		num = v + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}
