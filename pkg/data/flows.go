package data

import (
	"context"
	"fmt"

	"github.com/san-kum/chaosdata/pkg/dynamo"
	"github.com/san-kum/chaosdata/pkg/integrators"
	"github.com/san-kum/chaosdata/pkg/physics"
)

// Half-width of the random neighbourhood around a flow's canonical start.
const flowSpread = 0.25

// FlowOptions are the sampling settings shared by the continuous flows.
type FlowOptions struct {
	// Length is the number of samples returned.
	Length int
	// X0 is the initial condition; nil draws a random one.
	X0 dynamo.State
	// Step is the integration step. Sample is the time between returned
	// samples and is rounded to a whole number of steps.
	Step   float64
	Sample float64
	// Discard is the number of samples (not steps) dropped as transient.
	Discard int
	// Rand is used only when X0 is nil. Nil means dynamo.DefaultSource.
	Rand dynamo.Source
	// Solver integrates the flow. Nil means RK4 with one step per grid point.
	Solver dynamo.Solver
}

type LorenzOptions struct {
	physics.Lorenz
	FlowOptions
}

func DefaultLorenzOptions() LorenzOptions {
	return LorenzOptions{
		Lorenz: *physics.NewLorenz(),
		FlowOptions: FlowOptions{
			Length:  10000,
			Step:    0.001,
			Sample:  0.03,
			Discard: 1000,
		},
	}
}

// Lorenz generates a trajectory of the Lorenz system
//
//	dx/dt = sigma*(y - x)
//	dy/dt = x*(rho - z) - y
//	dz/dt = x*y - beta*z
//
// It returns the sample times and the sampled states.
func Lorenz(ctx context.Context, opts LorenzOptions) ([]float64, []dynamo.State, error) {
	times, states, err := sampleFlow(ctx, opts.Lorenz, opts.Lorenz.DefaultState(), opts.FlowOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("lorenz: %w", err)
	}
	return times, states, nil
}

type RoesslerOptions struct {
	physics.Rossler
	FlowOptions
}

func DefaultRoesslerOptions() RoesslerOptions {
	return RoesslerOptions{
		Rossler: *physics.NewRossler(),
		FlowOptions: FlowOptions{
			Length:  10000,
			Step:    0.001,
			Sample:  0.1,
			Discard: 1000,
		},
	}
}

// Roessler generates a trajectory of the Rössler oscillator
//
//	dx/dt = -(y + z)
//	dy/dt = x + a*y
//	dz/dt = b + z*(x - c)
//
// It returns the sample times and the sampled states.
func Roessler(ctx context.Context, opts RoesslerOptions) ([]float64, []dynamo.State, error) {
	times, states, err := sampleFlow(ctx, opts.Rossler, opts.Rossler.DefaultState(), opts.FlowOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("roessler: %w", err)
	}
	return times, states, nil
}

// sampleFlow integrates sys on a grid of spacing Step and keeps every
// stride-th state after the first Discard samples.
func sampleFlow(ctx context.Context, sys dynamo.System, center dynamo.State, opts FlowOptions) ([]float64, []dynamo.State, error) {
	if err := checkLength(opts.Length, opts.Discard); err != nil {
		return nil, nil, err
	}
	if err := checkPositive("step", opts.Step); err != nil {
		return nil, nil, err
	}
	if err := checkPositive("sample", opts.Sample); err != nil {
		return nil, nil, err
	}
	if err := dynamo.CheckInitial(opts.X0, sys.StateDim()); err != nil {
		return nil, nil, err
	}
	sub, err := stride(opts.Sample / opts.Step)
	if err != nil {
		return nil, nil, err
	}

	grid := make([]float64, sub*(opts.Length+opts.Discard))
	for k := range grid {
		grid[k] = float64(k) * opts.Step
	}

	x0 := opts.X0
	if x0 == nil {
		x0 = dynamo.Perturb(dynamo.OrDefault(opts.Rand), center, flowSpread)
	}

	solver := opts.Solver
	if solver == nil {
		solver = integrators.NewGridSolver(integrators.NewRK4())
	}

	trajectory, err := solver.Solve(ctx, sys, x0, grid)
	if err != nil {
		return nil, nil, err
	}
	if len(trajectory) != len(grid) {
		return nil, nil, fmt.Errorf("solver returned %d states for %d grid points", len(trajectory), len(grid))
	}

	times := make([]float64, opts.Length)
	states := make([]dynamo.State, opts.Length)
	for j := range states {
		k := (opts.Discard + j) * sub
		times[j] = grid[k]
		states[j] = trajectory[k]
	}

	return times, states, nil
}
