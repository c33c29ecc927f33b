package synthetic

import (
	"fmt"
	"math"

	"github.com/san-kum/tslab/internal/dynamo"
	"github.com/san-kum/tslab/internal/integrators"
)

type lorenzSystem struct{ sigma, rho, beta float64 }

func (l *lorenzSystem) StateDim() int { return 3 }

func (l *lorenzSystem) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{l.sigma * (s[1] - s[0]), s[0]*(l.rho-s[2]) - s[1], s[0]*s[1] - l.beta*s[2]}
}

// DefaultTol is the local error tolerance for adaptive integrators.
const DefaultTol = 1e-6

// LorenzParams configures [Lorenz]. Integrator defaults to RK4 when nil.
// An integrator that implements [dynamo.AdaptiveIntegrator] starts each
// sample interval at span/Substeps and then follows its own step proposals
// under Tol (DefaultTol when zero).
type LorenzParams struct {
	Sigma      float64
	Rho        float64
	Beta       float64
	Dt         float64
	State0     dynamo.State
	Substeps   int
	Tol        float64
	Integrator dynamo.Integrator
}

// DefaultLorenzParams returns the classic chaotic parameter set
// (sigma=10, rho=28, beta=8/3) starting from (-13, -14, 47).
func DefaultLorenzParams() LorenzParams {
	return LorenzParams{
		Sigma:    10.0,
		Rho:      28.0,
		Beta:     8.0 / 3.0,
		Dt:       0.01,
		State0:   dynamo.State{-13, -14, 47},
		Substeps: 10,
		Tol:      DefaultTol,
	}
}

// Lorenz samples the Lorenz system at n evenly spaced times on [0, n*Dt].
// The first row is State0.
func Lorenz(n int, p LorenzParams) ([]dynamo.State, error) {
	if n < 1 || p.Dt <= 0 || p.Substeps < 1 || len(p.State0) != 3 {
		return nil, fmt.Errorf("lorenz: n=%d dt=%g substeps=%d dim=%d: %w",
			n, p.Dt, p.Substeps, len(p.State0), dynamo.ErrInvalidArgument)
	}

	integ := p.Integrator
	if integ == nil {
		integ = integrators.NewRK4()
	}
	sys := &lorenzSystem{sigma: p.Sigma, rho: p.Rho, beta: p.Beta}

	states := make([]dynamo.State, n)
	states[0] = p.State0.Clone()
	if n == 1 {
		return states, nil
	}

	tol := p.Tol
	if tol <= 0 {
		tol = DefaultTol
	}
	span := float64(n) * p.Dt / float64(n-1)
	h := span / float64(p.Substeps)
	adaptive, isAdaptive := integ.(dynamo.AdaptiveIntegrator)

	x := p.State0.Clone()
	for i := 1; i < n; i++ {
		t0 := float64(i-1) * span
		var err error
		if isAdaptive {
			x, h, err = advanceAdaptive(adaptive, sys, x, t0, span, h, tol)
		} else {
			for s := 0; s < p.Substeps; s++ {
				x = integ.Step(sys, x, t0+float64(s)*h, h)
			}
			if !x.IsValid() {
				err = dynamo.ErrUnstable
			}
		}
		if err != nil {
			return nil, fmt.Errorf("lorenz: %w", &dynamo.SimulationError{Step: i, State: x, Wrapped: err})
		}
		states[i] = x.Clone()
	}
	return states, nil
}

// advanceAdaptive integrates x from t0 to exactly t0+span, starting with
// step h. A proposal smaller than the step just taken rejects that step,
// unless the step is already at the floor of span*1e-9. It returns the step
// to start the next interval with.
func advanceAdaptive(integ dynamo.AdaptiveIntegrator, sys dynamo.System, x dynamo.State, t0, span, h, tol float64) (dynamo.State, float64, error) {
	end := t0 + span
	minStep := span * 1e-9
	h = math.Min(h, span)

	for t := t0; t < end; {
		last := h >= end-t
		step := h
		if last {
			step = end - t
		}

		next, proposed, err := integ.StepAdaptive(sys, x, t, step, tol)
		if err != nil {
			return next, h, err
		}
		if proposed < step && step > minStep {
			h = math.Max(proposed, minStep)
			continue
		}

		x = next
		if last {
			t = end
		} else {
			t += step
			h = math.Min(proposed, span)
		}
	}
	return x, h, nil
}

// LorenzSeries splits sampled states into X, Y and Z columns.
func LorenzSeries(states []dynamo.State) *dynamo.Series {
	cols := [][]float64{make([]float64, len(states)), make([]float64, len(states)), make([]float64, len(states))}
	for i, s := range states {
		cols[0][i], cols[1][i], cols[2][i] = s[0], s[1], s[2]
	}
	return &dynamo.Series{Names: []string{"X", "Y", "Z"}, Columns: cols}
}
