package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tslab/internal/dynamo"
)

const (
	DefaultN          = 1000
	DefaultTau        = 17
	DefaultDeltaT     = 10
	DefaultSigma      = 10.0
	DefaultRho        = 28.0
	DefaultBeta       = 8.0 / 3.0
	DefaultLorenzDt   = 0.01
	DefaultSubsteps   = 10
	DefaultIntegrator = "rk4"
)

// Config describes one generator run.
type Config struct {
	Generator   string            `yaml:"generator"`
	N           int               `yaml:"n"`
	Seed        uint64            `yaml:"seed"`
	MackeyGlass MackeyGlassConfig `yaml:"mackey_glass"`
	Lorenz      LorenzConfig      `yaml:"lorenz"`
}

type MackeyGlassConfig struct {
	Tau    int `yaml:"tau"`
	DeltaT int `yaml:"delta_t"`
}

type LorenzConfig struct {
	Sigma      float64    `yaml:"sigma"`
	Rho        float64    `yaml:"rho"`
	Beta       float64    `yaml:"beta"`
	Dt         float64    `yaml:"dt"`
	State0     [3]float64 `yaml:"state0"`
	Substeps   int        `yaml:"substeps"`
	Integrator string     `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Generator: "mackey_glass",
		N:         DefaultN,
		MackeyGlass: MackeyGlassConfig{
			Tau:    DefaultTau,
			DeltaT: DefaultDeltaT,
		},
		Lorenz: LorenzConfig{
			Sigma:      DefaultSigma,
			Rho:        DefaultRho,
			Beta:       DefaultBeta,
			Dt:         DefaultLorenzDt,
			State0:     [3]float64{-13, -14, 47},
			Substeps:   DefaultSubsteps,
			Integrator: DefaultIntegrator,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields used by the selected generator.
func (c *Config) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("config: n=%d: %w", c.N, dynamo.ErrInvalidArgument)
	}
	switch c.Generator {
	case "mackey_glass":
		if c.MackeyGlass.Tau < 1 || c.MackeyGlass.DeltaT < 1 {
			return fmt.Errorf("config: tau=%d delta_t=%d: %w", c.MackeyGlass.Tau, c.MackeyGlass.DeltaT, dynamo.ErrInvalidArgument)
		}
	case "lorenz":
		if c.Lorenz.Dt <= 0 || c.Lorenz.Substeps < 1 {
			return fmt.Errorf("config: lorenz dt=%g substeps=%d: %w", c.Lorenz.Dt, c.Lorenz.Substeps, dynamo.ErrInvalidArgument)
		}
	case "mso":
	default:
		return fmt.Errorf("config: generator %q: %w", c.Generator, dynamo.ErrUnknownMethod)
	}
	return nil
}

// Params flattens the numeric settings of the selected generator for run metadata.
func (c *Config) Params() map[string]float64 {
	p := map[string]float64{"n": float64(c.N)}
	switch c.Generator {
	case "mackey_glass":
		p["tau"] = float64(c.MackeyGlass.Tau)
		p["delta_t"] = float64(c.MackeyGlass.DeltaT)
	case "lorenz":
		p["sigma"] = c.Lorenz.Sigma
		p["rho"] = c.Lorenz.Rho
		p["beta"] = c.Lorenz.Beta
		p["dt"] = c.Lorenz.Dt
		p["substeps"] = float64(c.Lorenz.Substeps)
		p["x0"], p["y0"], p["z0"] = c.Lorenz.State0[0], c.Lorenz.State0[1], c.Lorenz.State0[2]
	}
	return p
}
