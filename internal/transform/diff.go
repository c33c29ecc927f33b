package transform

import (
	"fmt"
	"math"

	"github.com/san-kum/tslab/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

func checkPeriods(op string, x []float64, periods int) error {
	if periods < 1 {
		return fmt.Errorf("%s: periods=%d: %w", op, periods, dynamo.ErrInvalidArgument)
	}
	if len(x) <= periods {
		return fmt.Errorf("%s: %d points for periods=%d: %w", op, len(x), periods, dynamo.ErrInsufficientData)
	}
	return nil
}

// Diff returns the discrete difference x[i+periods] - x[i].
func Diff(x []float64, periods int) ([]float64, error) {
	if err := checkPeriods("diff", x, periods); err != nil {
		return nil, err
	}
	out := make([]float64, len(x)-periods)
	floats.SubTo(out, x[periods:], x[:len(x)-periods])
	return out, nil
}

// Returns returns the fractional change x[i+periods]/x[i] - 1.
func Returns(x []float64, periods int) ([]float64, error) {
	if err := checkPeriods("returns", x, periods); err != nil {
		return nil, err
	}
	out := make([]float64, len(x)-periods)
	floats.DivTo(out, x[periods:], x[:len(x)-periods])
	floats.AddConst(-1, out)
	return out, nil
}

// LogReturns returns log(x[i+periods]) - log(x[i]) with NaN results
// (non-positive prices) dropped.
func LogReturns(x []float64, periods int) ([]float64, error) {
	if err := checkPeriods("log returns", x, periods); err != nil {
		return nil, err
	}
	logs := make([]float64, len(x))
	for i, v := range x {
		logs[i] = math.Log(v)
	}

	out := make([]float64, 0, len(x)-periods)
	for i := periods; i < len(logs); i++ {
		d := logs[i] - logs[i-periods]
		if math.IsNaN(d) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
