package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaosdata/internal/config"
	"github.com/san-kum/chaosdata/internal/experiment"
)

// Scenario is a YAML manifest of generation jobs, run in order.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Jobs        []ScenarioJob `yaml:"jobs"`
}

// ScenarioJob is one config with an optional label and realization count.
type ScenarioJob struct {
	config.Config `yaml:",inline"`

	Label        string `yaml:"label"`
	Realizations int    `yaml:"realizations"`
}

// Result is the output of one scenario job or sweep point.
type Result struct {
	Label        string
	Config       *config.Config
	Realizations []experiment.Realization
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Jobs) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no jobs", config.ErrInvalidConfig, scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes every job. It stops at the first failing job and
// returns the results gathered so far with the error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]Result, 0, len(scenario.Jobs))

	for i, job := range scenario.Jobs {
		cfg := job.Config.Clone()
		label := job.Label
		if label == "" {
			label = fmt.Sprintf("%s-%d", cfg.System, i+1)
		}
		logger.Info("running job", "scenario", scenario.Name, "job", i+1, "of", len(scenario.Jobs), "label", label)

		runs, err := experiment.New(cfg, registry).Batch(ctx, job.Realizations, logger)
		if err != nil {
			return results, fmt.Errorf("job %d (%s): %w", i+1, label, err)
		}
		results = append(results, Result{Label: label, Config: cfg, Realizations: runs})
	}

	return results, nil
}

// ParameterSweep generates one series per value of a single model constant,
// spaced evenly from Min to Max inclusive.
type ParameterSweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
}

// Values returns the swept parameter values.
func (s *ParameterSweep) Values() []float64 {
	if s.Steps == 1 {
		return []float64{s.Min}
	}
	values := make([]float64, s.Steps)
	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range values {
		values[i] = s.Min + float64(i)*step
	}
	values[s.Steps-1] = s.Max
	return values
}

// RunSweep runs the base config once per value. Every point uses the same
// seed, drawn once when the base config has none, so only the parameter
// differs between points.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", config.ErrInvalidConfig)
	}
	if sweep.Param == "" {
		return nil, fmt.Errorf("%w: sweep parameter is required", config.ErrInvalidConfig)
	}

	seed := rand.Uint64()
	if sweep.Base.Seed != nil {
		seed = *sweep.Base.Seed
	}

	values := sweep.Values()
	results := make([]Result, 0, len(values))

	for i, v := range values {
		cfg := sweep.Base.Clone()
		cfg.Seed = &seed
		cfg.SetParam(sweep.Param, v)
		label := fmt.Sprintf("%s=%g", sweep.Param, v)

		runs, err := experiment.New(cfg, registry).Batch(ctx, 1, logger)
		if err != nil {
			return nil, fmt.Errorf("sweep %s: %w", label, err)
		}
		results = append(results, Result{Label: label, Config: cfg, Realizations: runs})
		logger.Info("sweep point done", "point", i+1, "of", len(values), "param", sweep.Param, "value", v)
	}

	return results, nil
}
