package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/chaosdata/internal/config"
	"github.com/san-kum/chaosdata/pkg/dynamo"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	return &Experiment{cfg: cfg, registry: registry}
}

// Run generates one realization. A config seed gives a reproducible run;
// without one the process-wide source is used.
func (e *Experiment) Run(ctx context.Context) (*Series, error) {
	var src dynamo.Source
	if e.cfg.Seed != nil {
		src = dynamo.NewSource(*e.cfg.Seed)
	}
	return e.RunWith(ctx, src)
}

// RunWith generates one realization drawing from src.
func (e *Experiment) RunWith(ctx context.Context, src dynamo.Source) (*Series, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := e.registry.GetGenerator(e.cfg.System)
	if err != nil {
		return nil, err
	}
	series, err := gen(ctx, e.cfg, src)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", e.cfg.System, err)
	}
	return series, nil
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}
