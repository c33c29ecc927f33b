package experiment

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/tslab/internal/config"
	"github.com/san-kum/tslab/internal/dynamo"
	"github.com/san-kum/tslab/internal/logging"
	"github.com/san-kum/tslab/internal/storage"
	"github.com/san-kum/tslab/internal/synthetic"
)

// Experiment runs one configured generator with its own seeded source.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *slog.Logger
}

func New(cfg *config.Config, registry *Registry, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

type Result struct {
	Series  *dynamo.Series
	Elapsed time.Duration
}

func (e *Experiment) Run() (*Result, error) {
	if e.registry == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := e.registry.GetGenerator(e.cfg.Generator)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("generating", "generator", e.cfg.Generator, "n", e.cfg.N, "seed", e.cfg.Seed)
	start := time.Now()
	series, err := gen(e.cfg, synthetic.NewSource(e.cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.cfg.Generator, err)
	}
	elapsed := time.Since(start)
	e.logger.Debug("generated", "generator", e.cfg.Generator, "elapsed", elapsed)

	return &Result{Series: series, Elapsed: elapsed}, nil
}

// Metadata describes the run for the store.
func (e *Experiment) Metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Kind:   e.cfg.Generator,
		Seed:   e.cfg.Seed,
		Params: e.cfg.Params(),
	}
}
