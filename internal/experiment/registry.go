package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/chaosdata/internal/config"
	"github.com/san-kum/chaosdata/pkg/data"
	"github.com/san-kum/chaosdata/pkg/dynamo"
	"github.com/san-kum/chaosdata/pkg/integrators"
)

// Series is one generated realization. Times is nil for systems indexed by
// iteration rather than by time.
type Series struct {
	System  string
	Columns []string
	Times   []float64
	States  [][]float64
}

func (s *Series) Len() int { return len(s.States) }

// Generator produces a series from a job config. src draws any random
// initial condition or spectral phase.
type Generator func(ctx context.Context, cfg *config.Config, src dynamo.Source) (*Series, error)

// SystemInfo describes a registered system for listings.
type SystemInfo struct {
	Name        string
	Description string
	Columns     []string
	Params      map[string]float64
}

type system struct {
	info SystemInfo
	gen  Generator
}

type Registry struct {
	systems     map[string]system
	integrators map[string]func(tol float64) dynamo.Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		systems:     make(map[string]system),
		integrators: make(map[string]func(tol float64) dynamo.Solver),
	}

	r.integrators["euler"] = func(float64) dynamo.Solver { return integrators.NewGridSolver(integrators.NewEuler()) }
	r.integrators["rk4"] = func(float64) dynamo.Solver { return integrators.NewGridSolver(integrators.NewRK4()) }
	r.integrators["rk45"] = func(tol float64) dynamo.Solver {
		if tol <= 0 {
			tol = config.DefaultTolerance
		}
		return integrators.NewAdaptiveSolver(integrators.NewRK45(), tol)
	}

	lorenz := data.DefaultLorenzOptions()
	r.register(SystemInfo{
		Name:        "lorenz",
		Description: "Lorenz (1963) convection flow",
		Columns:     []string{"x", "y", "z"},
		Params:      lorenz.Lorenz.Params(),
	}, r.lorenz)

	roessler := data.DefaultRoesslerOptions()
	r.register(SystemInfo{
		Name:        "roessler",
		Description: "Roessler (1976) spiral flow",
		Columns:     []string{"x", "y", "z"},
		Params:      roessler.Rossler.Params(),
	}, r.roessler)

	henon := data.DefaultHenonOptions()
	r.register(SystemInfo{
		Name:        "henon",
		Description: "Henon (1976) quadratic map",
		Columns:     []string{"x", "y"},
		Params:      henon.Henon.Params(),
	}, henonGenerator)

	ikeda := data.DefaultIkedaOptions()
	r.register(SystemInfo{
		Name:        "ikeda",
		Description: "Ikeda (1979) optical ring cavity map",
		Columns:     []string{"x", "y"},
		Params:      ikeda.Ikeda.Params(),
	}, ikedaGenerator)

	mg := data.DefaultMackeyGlassOptions()
	r.register(SystemInfo{
		Name:        "mackey_glass",
		Description: "Mackey-Glass (1977) delay equation",
		Columns:     []string{"x"},
		Params:      mg.MackeyGlass.Params(),
	}, mackeyGlassGenerator)

	noise := data.DefaultFAlphaOptions()
	r.register(SystemInfo{
		Name:        "falpha",
		Description: "(1/f)^alpha noise by spectral synthesis",
		Columns:     []string{"x"},
		Params:      map[string]float64{"alpha": noise.Alpha, "mean": noise.Mean, "var": noise.Var},
	}, falphaGenerator)

	return r
}

func (r *Registry) register(info SystemInfo, gen Generator) {
	r.systems[info.Name] = system{info: info, gen: gen}
}

func (r *Registry) GetGenerator(name string) (Generator, error) {
	s, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return s.gen, nil
}

func (r *Registry) GetSolver(name string, tol float64) (dynamo.Solver, error) {
	if name == "" {
		name = config.DefaultIntegrator
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(tol), nil
}

func (r *Registry) Info(name string) (SystemInfo, bool) {
	s, ok := r.systems[name]
	return s.info, ok
}

func (r *Registry) ListSystems() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lorenz(ctx context.Context, cfg *config.Config, src dynamo.Source) (*Series, error) {
	opts := data.DefaultLorenzOptions()
	if err := applyParams(&opts.Lorenz, cfg.Params); err != nil {
		return nil, err
	}
	if err := r.applyFlow(&opts.FlowOptions, cfg, src); err != nil {
		return nil, err
	}
	times, states, err := data.Lorenz(ctx, opts)
	if err != nil {
		return nil, err
	}
	return vectorSeries("lorenz", []string{"x", "y", "z"}, times, states), nil
}

func (r *Registry) roessler(ctx context.Context, cfg *config.Config, src dynamo.Source) (*Series, error) {
	opts := data.DefaultRoesslerOptions()
	if err := applyParams(&opts.Rossler, cfg.Params); err != nil {
		return nil, err
	}
	if err := r.applyFlow(&opts.FlowOptions, cfg, src); err != nil {
		return nil, err
	}
	times, states, err := data.Roessler(ctx, opts)
	if err != nil {
		return nil, err
	}
	return vectorSeries("roessler", []string{"x", "y", "z"}, times, states), nil
}

func henonGenerator(_ context.Context, cfg *config.Config, src dynamo.Source) (*Series, error) {
	opts := data.DefaultHenonOptions()
	if err := rejectUnused("henon", cfg, "step", "sample", "n"); err != nil {
		return nil, err
	}
	if err := applyParams(&opts.Henon, cfg.Params); err != nil {
		return nil, err
	}
	applyCommon(&opts.Length, &opts.Discard, cfg)
	opts.X0 = initial(cfg)
	opts.Rand = src

	states, err := data.Henon(opts)
	if err != nil {
		return nil, err
	}
	return vectorSeries("henon", []string{"x", "y"}, nil, states), nil
}

func ikedaGenerator(_ context.Context, cfg *config.Config, src dynamo.Source) (*Series, error) {
	opts := data.DefaultIkedaOptions()
	if err := rejectUnused("ikeda", cfg, "step", "sample", "n"); err != nil {
		return nil, err
	}
	if err := applyParams(&opts.Ikeda, cfg.Params); err != nil {
		return nil, err
	}
	applyCommon(&opts.Length, &opts.Discard, cfg)
	opts.X0 = initial(cfg)
	opts.Rand = src

	states, err := data.Ikeda(opts)
	if err != nil {
		return nil, err
	}
	return vectorSeries("ikeda", []string{"x", "y"}, nil, states), nil
}

func mackeyGlassGenerator(_ context.Context, cfg *config.Config, src dynamo.Source) (*Series, error) {
	opts := data.DefaultMackeyGlassOptions()
	if err := rejectUnused("mackey_glass", cfg, "step"); err != nil {
		return nil, err
	}
	if err := applyParams(&opts.MackeyGlass, cfg.Params); err != nil {
		return nil, err
	}
	applyCommon(&opts.Length, &opts.Discard, cfg)
	if cfg.N > 0 {
		opts.N = cfg.N
	}
	if cfg.Sample > 0 {
		opts.Sample = cfg.Sample
	}
	opts.X0 = cfg.X0
	opts.Rand = src

	x, err := data.MackeyGlass(opts)
	if err != nil {
		return nil, err
	}
	return scalarSeries("mackey_glass", x), nil
}

func falphaGenerator(_ context.Context, cfg *config.Config, src dynamo.Source) (*Series, error) {
	opts := data.DefaultFAlphaOptions()
	if err := rejectUnused("falpha", cfg, "step", "sample", "n", "discard", "x0"); err != nil {
		return nil, err
	}
	if cfg.Length > 0 {
		opts.Length = cfg.Length
	}
	for _, name := range sortedKeys(cfg.Params) {
		v := cfg.Params[name]
		switch name {
		case "alpha":
			opts.Alpha = v
		case "mean":
			opts.Mean = v
		case "var":
			opts.Var = v
		case "fl":
			opts.FL = data.Cutoff(v)
		case "fu":
			opts.FU = data.Cutoff(v)
		default:
			return nil, fmt.Errorf("falpha: %w %q", dynamo.ErrUnknownParam, name)
		}
	}
	opts.Rand = src

	x, err := data.FAlpha(opts)
	if err != nil {
		return nil, err
	}
	return scalarSeries("falpha", x), nil
}

func (r *Registry) applyFlow(opts *data.FlowOptions, cfg *config.Config, src dynamo.Source) error {
	if err := rejectUnused(cfg.System, cfg, "n"); err != nil {
		return err
	}
	applyCommon(&opts.Length, &opts.Discard, cfg)
	if cfg.Step > 0 {
		opts.Step = cfg.Step
	}
	if cfg.Sample > 0 {
		opts.Sample = cfg.Sample
	}
	opts.X0 = initial(cfg)
	opts.Rand = src

	solver, err := r.GetSolver(cfg.Integrator, cfg.Tolerance)
	if err != nil {
		return err
	}
	opts.Solver = solver
	return nil
}

// applyParams sets named constants in sorted order so the first unknown
// name reported is stable.
func applyParams(target dynamo.Configurable, params map[string]float64) error {
	for _, name := range sortedKeys(params) {
		if err := target.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

func applyCommon(length, discard *int, cfg *config.Config) {
	if cfg.Length > 0 {
		*length = cfg.Length
	}
	if cfg.Discard != nil {
		*discard = *cfg.Discard
	}
}

func initial(cfg *config.Config) dynamo.State {
	if cfg.X0 == nil {
		return nil
	}
	return dynamo.State(cfg.X0)
}

func rejectUnused(system string, cfg *config.Config, fields ...string) error {
	for _, f := range fields {
		set := false
		switch f {
		case "step":
			set = cfg.Step != 0
		case "sample":
			set = cfg.Sample != 0
		case "n":
			set = cfg.N != 0
		case "discard":
			set = cfg.Discard != nil
		case "x0":
			set = cfg.X0 != nil
		}
		if set {
			return fmt.Errorf("%w: %s does not use %s", config.ErrInvalidConfig, system, f)
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func vectorSeries(name string, columns []string, times []float64, states []dynamo.State) *Series {
	out := &Series{System: name, Columns: columns, Times: times, States: make([][]float64, len(states))}
	for i, s := range states {
		out.States[i] = s
	}
	return out
}

func scalarSeries(name string, x []float64) *Series {
	out := &Series{System: name, Columns: []string{"x"}, States: make([][]float64, len(x))}
	for i, v := range x {
		out.States[i] = []float64{v}
	}
	return out
}
