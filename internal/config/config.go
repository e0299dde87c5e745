package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSystem     = "lorenz"
	DefaultIntegrator = "rk4"
	DefaultTolerance  = 1e-8
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config describes one generation job. Zero numeric fields fall back to the
// generator's own defaults, so a config only has to name what it changes.
type Config struct {
	System     string    `yaml:"system"`
	Integrator string    `yaml:"integrator,omitempty"`
	Tolerance  float64   `yaml:"tolerance,omitempty"`
	Seed       *uint64   `yaml:"seed,omitempty"`
	Length     int       `yaml:"length,omitempty"`
	Discard    *int      `yaml:"discard,omitempty"`
	Step       float64   `yaml:"step,omitempty"`
	Sample     float64   `yaml:"sample,omitempty"`
	N          int       `yaml:"n,omitempty"`
	X0         []float64 `yaml:"x0,omitempty"`

	// Params overrides model constants by name, e.g. rho or tau. For falpha
	// the names are alpha, mean, var, fl and fu.
	Params map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		System:     DefaultSystem,
		Integrator: DefaultIntegrator,
		Tolerance:  DefaultTolerance,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
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

// Validate checks the fields that do not depend on the chosen system.
func (c *Config) Validate() error {
	if c.System == "" {
		return fmt.Errorf("%w: system is required", ErrInvalidConfig)
	}
	switch c.Integrator {
	case "", "rk4", "euler", "rk45":
	default:
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalidConfig, c.Integrator)
	}
	if c.Length < 0 {
		return fmt.Errorf("%w: length %d is negative", ErrInvalidConfig, c.Length)
	}
	if c.Discard != nil && *c.Discard < 0 {
		return fmt.Errorf("%w: discard %d is negative", ErrInvalidConfig, *c.Discard)
	}
	if c.N < 0 {
		return fmt.Errorf("%w: n %d is negative", ErrInvalidConfig, c.N)
	}
	if c.Step < 0 || c.Sample < 0 || c.Tolerance < 0 {
		return fmt.Errorf("%w: step, sample and tolerance must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	out := *c
	if c.Seed != nil {
		seed := *c.Seed
		out.Seed = &seed
	}
	if c.Discard != nil {
		discard := *c.Discard
		out.Discard = &discard
	}
	if c.X0 != nil {
		out.X0 = append([]float64(nil), c.X0...)
	}
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// SetParam records a model constant override.
func (c *Config) SetParam(name string, value float64) {
	if c.Params == nil {
		c.Params = make(map[string]float64)
	}
	c.Params[name] = value
}
