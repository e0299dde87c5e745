package data

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/chaosdata/pkg/dynamo"
	"github.com/san-kum/chaosdata/pkg/integrators"
)

// indexSolver returns state {k, 0, 0} at grid point k so tests can see which
// grid points were sampled.
type indexSolver struct {
	grid []float64
	x0   dynamo.State
}

func (s *indexSolver) Solve(_ context.Context, _ dynamo.System, x0 dynamo.State, times []float64) ([]dynamo.State, error) {
	s.grid = times
	s.x0 = x0
	out := make([]dynamo.State, len(times))
	for k := range out {
		out[k] = dynamo.State{float64(k), 0, 0}
	}
	return out, nil
}

type failingSolver struct{ err error }

func (s failingSolver) Solve(context.Context, dynamo.System, dynamo.State, []float64) ([]dynamo.State, error) {
	return nil, s.err
}

func TestLorenz_SamplesEveryStride(t *testing.T) {
	solver := &indexSolver{}
	opts := DefaultLorenzOptions()
	opts.Length = 7
	opts.Discard = 3
	opts.X0 = dynamo.State{1, 1, 1}
	opts.Solver = solver

	times, states, err := Lorenz(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, times, 7)
	require.Len(t, states, 7)

	// 0.03/0.001 rounds to 30 steps per sample.
	const sub = 30
	require.Len(t, solver.grid, sub*(7+3))
	assert.Equal(t, 0.0, solver.grid[0])
	assert.InDelta(t, 0.001, solver.grid[1], 1e-15)

	for j := range states {
		k := (3 + j) * sub
		assert.Equal(t, float64(k), states[j][0], "sample %d", j)
		assert.InDelta(t, float64(k)*0.001, times[j], 1e-12, "time %d", j)
	}
	assert.InDelta(t, 0.03, times[1]-times[0], 1e-12)
}

func TestLorenz_DefaultSolverMatchesRK4Grid(t *testing.T) {
	opts := DefaultLorenzOptions()
	opts.Length = 20
	opts.Discard = 0
	opts.X0 = dynamo.State{0, -0.01, 9}

	_, states, err := Lorenz(context.Background(), opts)
	require.NoError(t, err)

	// Reproduce the first sample by hand: 30 RK4 steps of 0.001.
	rk4 := integrators.NewRK4()
	x := opts.X0.Clone()
	for k := 0; k < 30; k++ {
		x = rk4.Step(opts.Lorenz, x, float64(k)*0.001, 0.001)
	}
	assert.Equal(t, opts.X0, states[0])
	assert.InDeltaSlice(t, []float64(x), []float64(states[1]), 1e-12)
}

func TestLorenz_StaysOnAttractor(t *testing.T) {
	opts := DefaultLorenzOptions()
	opts.Length = 500
	opts.Discard = 100
	opts.Rand = dynamo.NewSource(11)

	_, states, err := Lorenz(context.Background(), opts)
	require.NoError(t, err)
	for i, s := range states {
		require.True(t, s.IsValid(), "state %d invalid", i)
		require.Less(t, math.Abs(s[0]), 30.0, "state %d", i)
		require.Greater(t, s[2], 0.0, "state %d", i)
	}
}

func TestRoessler_SamplesEveryStride(t *testing.T) {
	solver := &indexSolver{}
	opts := DefaultRoesslerOptions()
	opts.Length = 5
	opts.Discard = 2
	opts.Solver = solver
	opts.Rand = dynamo.NewSource(5)

	times, states, err := Roessler(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, states, 5)

	// 0.1/0.001 = 100 steps per sample.
	require.Len(t, solver.grid, 100*7)
	assert.Equal(t, 200.0, states[0][0])
	assert.InDelta(t, 0.2, times[0], 1e-12)

	// The random start lies within 0.25 of (-9, 0, 0).
	assert.InDeltaSlice(t, []float64{-9, 0, 0}, []float64(solver.x0), flowSpread)
}

func TestRoessler_Bounded(t *testing.T) {
	opts := DefaultRoesslerOptions()
	opts.Length = 300
	opts.Discard = 50
	opts.Rand = dynamo.NewSource(2)

	_, states, err := Roessler(context.Background(), opts)
	require.NoError(t, err)
	for i, s := range states {
		require.True(t, s.IsValid(), "state %d invalid", i)
		require.Less(t, math.Abs(s[0]), 20.0, "state %d", i)
	}
}

func TestFlows_AdaptiveSolver(t *testing.T) {
	opts := DefaultRoesslerOptions()
	opts.Length = 50
	opts.Discard = 0
	opts.Step = 0.01
	opts.X0 = dynamo.State{-9, 0, 0}

	_, fixed, err := Roessler(context.Background(), opts)
	require.NoError(t, err)

	opts.Solver = integrators.NewAdaptiveSolver(integrators.NewRK45(), 1e-10)
	_, adaptive, err := Roessler(context.Background(), opts)
	require.NoError(t, err)

	for j := range fixed {
		assert.InDeltaSlice(t, []float64(fixed[j]), []float64(adaptive[j]), 1e-4, "sample %d", j)
	}
}

func TestFlows_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LorenzOptions)
		want   error
	}{
		{"stride rounds to zero", func(o *LorenzOptions) { o.Step, o.Sample = 0.01, 0.004 }, dynamo.ErrInvalidStride},
		{"zero step", func(o *LorenzOptions) { o.Step = 0 }, dynamo.ErrParameterBounds},
		{"negative sample", func(o *LorenzOptions) { o.Sample = -0.03 }, dynamo.ErrParameterBounds},
		{"X0 wrong size", func(o *LorenzOptions) { o.X0 = dynamo.State{1, 2} }, dynamo.ErrInvalidInitialCondition},
		{"zero length", func(o *LorenzOptions) { o.Length = 0 }, dynamo.ErrParameterBounds},
		{"negative discard", func(o *LorenzOptions) { o.Discard = -5 }, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultLorenzOptions()
			opts.Length = 10
			opts.Discard = 0
			tt.mutate(&opts)
			_, _, err := Lorenz(context.Background(), opts)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFlows_PropagatesIntegrationFailure(t *testing.T) {
	boom := &dynamo.SimulationError{Step: 12, Time: 0.012, Wrapped: dynamo.ErrInvalidState}

	opts := DefaultRoesslerOptions()
	opts.Length = 10
	opts.Solver = failingSolver{err: boom}

	times, states, err := Roessler(context.Background(), opts)
	require.Error(t, err)
	assert.Nil(t, times)
	assert.Nil(t, states)
	assert.ErrorIs(t, err, dynamo.ErrInvalidState)

	var simErr *dynamo.SimulationError
	require.True(t, errors.As(err, &simErr))
	assert.Equal(t, 12, simErr.Step)
}

func TestFlows_NonFiniteInitialCondition(t *testing.T) {
	opts := DefaultLorenzOptions()
	opts.Length = 10
	opts.X0 = dynamo.State{math.NaN(), 0, 0}

	_, _, err := Lorenz(context.Background(), opts)
	require.ErrorIs(t, err, dynamo.ErrInvalidState)
}
