package config

import "sort"

func intPtr(v int) *int { return &v }

// Presets holds named configurations per system. Parameter values follow
// the standard literature settings for each attractor.
var Presets = map[string]map[string]*Config{
	"lorenz": {
		"classic": {
			System: "lorenz", Integrator: "rk4", Length: 10000, Step: 0.001, Sample: 0.03,
			Params: map[string]float64{"sigma": 10, "rho": 28, "beta": 8.0 / 3.0},
		},
		"fine": {
			System: "lorenz", Integrator: "rk4", Length: 20000, Step: 0.0005, Sample: 0.01,
		},
		"adaptive": {
			System: "lorenz", Integrator: "rk45", Tolerance: 1e-9, Length: 10000, Step: 0.01, Sample: 0.03,
		},
	},
	"roessler": {
		"classic": {
			System: "roessler", Integrator: "rk4", Length: 10000, Step: 0.001, Sample: 0.1,
			Params: map[string]float64{"a": 0.2, "b": 0.2, "c": 5.7},
		},
		"periodic": {
			System: "roessler", Integrator: "rk4", Length: 5000, Step: 0.001, Sample: 0.1,
			Params: map[string]float64{"c": 2.5},
		},
	},
	"henon": {
		"classic": {
			System: "henon", Length: 10000, Discard: intPtr(500),
			Params: map[string]float64{"a": 1.4, "b": 0.3},
		},
		"short": {
			System: "henon", Length: 1000, Discard: intPtr(100),
		},
	},
	"ikeda": {
		"classic": {
			System: "ikeda", Length: 10000, Discard: intPtr(500),
			Params: map[string]float64{"alpha": 6.0, "beta": 0.4, "gamma": 1.0, "mu": 0.9},
		},
	},
	"mackey_glass": {
		"tau17": {
			System: "mackey_glass", Length: 10000, Sample: 1.0,
			Params: map[string]float64{"tau": 17},
		},
		"tau23": {
			System: "mackey_glass", Length: 10000, Sample: 0.46,
			Params: map[string]float64{"tau": 23},
		},
		"tau30": {
			System: "mackey_glass", Length: 10000, Sample: 1.0,
			Params: map[string]float64{"tau": 30},
		},
	},
	"falpha": {
		"white": {
			System: "falpha", Length: 8192, Params: map[string]float64{"alpha": 0},
		},
		"pink": {
			System: "falpha", Length: 8192, Params: map[string]float64{"alpha": 1},
		},
		"brown": {
			System: "falpha", Length: 8192, Params: map[string]float64{"alpha": 2},
		},
		"band": {
			System: "falpha", Length: 8192, Params: map[string]float64{"alpha": 1, "fl": 0.05, "fu": 0.25},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
