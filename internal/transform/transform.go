package transform

import (
	"fmt"
	"sort"

	"github.com/san-kum/tslab/internal/dynamo"
)

// Func is a single-parameter transform, the parameter being periods or window.
type Func func(x []float64, param int) ([]float64, error)

var ops = map[string]Func{
	"diff":    Diff,
	"ret":     Returns,
	"log_ret": LogReturns,
	MethodMean: func(x []float64, w int) ([]float64, error) {
		return Smooth(x, MethodMean, w)
	},
	MethodEWMA: func(x []float64, w int) ([]float64, error) {
		return Smooth(x, MethodEWMA, w)
	},
}

// Lookup returns the named transform.
func Lookup(name string) (Func, error) {
	fn, ok := ops[name]
	if !ok {
		return nil, fmt.Errorf("transform %q: %w", name, dynamo.ErrUnknownMethod)
	}
	return fn, nil
}

// Apply runs the named transform over every column of s. Column names are
// suffixed with the transform name.
func Apply(name string, s *dynamo.Series, param int) (*dynamo.Series, error) {
	fn, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out := &dynamo.Series{
		Names:   make([]string, len(s.Names)),
		Columns: make([][]float64, len(s.Columns)),
	}
	for i, col := range s.Columns {
		v, err := fn(col, param)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", s.Names[i], err)
		}
		out.Names[i] = s.Names[i] + "_" + name
		out.Columns[i] = v
	}
	return out, nil
}

func Names() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
