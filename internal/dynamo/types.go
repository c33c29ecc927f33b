package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous or time-dependent ODE right-hand side dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

// Series is a set of equally indexed named columns produced by a generator
// or a transform.
type Series struct {
	Names   []string
	Columns [][]float64
}

// NewSeries builds a single-column series.
func NewSeries(name string, values []float64) *Series {
	return &Series{Names: []string{name}, Columns: [][]float64{values}}
}

// Len returns the length of the longest column.
func (s *Series) Len() int {
	n := 0
	for _, c := range s.Columns {
		if len(c) > n {
			n = len(c)
		}
	}
	return n
}

// Column returns the named column, or nil.
func (s *Series) Column(name string) []float64 {
	for i, n := range s.Names {
		if n == name {
			return s.Columns[i]
		}
	}
	return nil
}
