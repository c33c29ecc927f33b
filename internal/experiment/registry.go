package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/tslab/internal/config"
	"github.com/san-kum/tslab/internal/dynamo"
	"github.com/san-kum/tslab/internal/integrators"
	"github.com/san-kum/tslab/internal/synthetic"
)

// Generator produces a series from a validated config and a random source.
type Generator func(cfg *config.Config, src synthetic.Source) (*dynamo.Series, error)

type Registry struct {
	generators map[string]Generator
}

func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}

	r.generators["mackey_glass"] = func(cfg *config.Config, src synthetic.Source) (*dynamo.Series, error) {
		xs, err := synthetic.MackeyGlass(cfg.N, cfg.MackeyGlass.Tau, cfg.MackeyGlass.DeltaT, src)
		if err != nil {
			return nil, err
		}
		return dynamo.NewSeries("Value", xs), nil
	}
	r.generators["lorenz"] = func(cfg *config.Config, _ synthetic.Source) (*dynamo.Series, error) {
		integ, err := integrators.New(cfg.Lorenz.Integrator)
		if err != nil {
			return nil, err
		}
		lc := cfg.Lorenz
		states, err := synthetic.Lorenz(cfg.N, synthetic.LorenzParams{
			Sigma:      lc.Sigma,
			Rho:        lc.Rho,
			Beta:       lc.Beta,
			Dt:         lc.Dt,
			State0:     dynamo.State{lc.State0[0], lc.State0[1], lc.State0[2]},
			Substeps:   lc.Substeps,
			Integrator: integ,
		})
		if err != nil {
			return nil, err
		}
		return synthetic.LorenzSeries(states), nil
	}
	r.generators["mso"] = func(cfg *config.Config, src synthetic.Source) (*dynamo.Series, error) {
		xs, err := synthetic.MSO(cfg.N, src)
		if err != nil {
			return nil, err
		}
		return dynamo.NewSeries("Value", xs), nil
	}

	return r
}

func (r *Registry) GetGenerator(name string) (Generator, error) {
	fn, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %s: %w", name, dynamo.ErrUnknownMethod)
	}
	return fn, nil
}

func (r *Registry) ListGenerators() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
