package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.System != "lorenz" {
		t.Errorf("expected system lorenz, got %s", cfg.System)
	}
	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mackey_glass", "tau17")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["tau"] != 17 {
		t.Errorf("expected tau 17, got %f", cfg.Params["tau"])
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("henon", "classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg.Params["a"] = 99
	*cfg.Discard = 1

	again := GetPreset("henon", "classic")
	if again.Params["a"] != 1.4 {
		t.Errorf("preset params were mutated: a = %f", again.Params["a"])
	}
	if *again.Discard != 500 {
		t.Errorf("preset discard was mutated: %d", *again.Discard)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("lorenz", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "classic"); cfg != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("falpha")
	if len(presets) != 4 {
		t.Errorf("expected 4 falpha presets, got %v", presets)
	}
	if presets[0] != "band" {
		t.Errorf("expected sorted names, got %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for system, presets := range Presets {
		for name, cfg := range presets {
			if cfg.System != system {
				t.Errorf("%s/%s: system field is %q", system, name, cfg.System)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", system, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty system", func(c *Config) { c.System = "" }},
		{"unknown integrator", func(c *Config) { c.Integrator = "verlet" }},
		{"negative length", func(c *Config) { c.Length = -1 }},
		{"negative discard", func(c *Config) { c.Discard = intPtr(-3) }},
		{"negative n", func(c *Config) { c.N = -1 }},
		{"negative step", func(c *Config) { c.Step = -0.01 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	seed := uint64(42)
	cfg := &Config{
		System:     "mackey_glass",
		Integrator: "rk4",
		Seed:       &seed,
		Length:     500,
		Discard:    intPtr(0),
		N:          100,
		Sample:     0.5,
		X0:         []float64{0.1, 0.2},
		Params:     map[string]float64{"tau": 30},
	}

	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.System, loaded.System)
	assert.Equal(t, seed, *loaded.Seed)
	assert.Equal(t, 0, *loaded.Discard, "explicit zero discard must survive")
	assert.Equal(t, cfg.X0, loaded.X0)
	assert.Equal(t, 30.0, loaded.Params["tau"])
	assert.Equal(t, DefaultTolerance, loaded.Tolerance)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: henon\nlength: 20\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "henon", cfg.System)
	assert.Equal(t, 20, cfg.Length)
	assert.Equal(t, DefaultIntegrator, cfg.Integrator)
	assert.Nil(t, cfg.Discard)
	assert.Nil(t, cfg.Seed)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("integrator: leapfrog\n"), 0644))
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
