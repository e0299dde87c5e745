package data

import (
	"fmt"

	"github.com/san-kum/chaosdata/pkg/dynamo"
	"github.com/san-kum/chaosdata/pkg/physics"
)

// Half-width of the random perturbation applied to each history slot.
const delaySpread = 0.05

type MackeyGlassOptions struct {
	physics.MackeyGlass

	// Length is the number of samples returned.
	Length int
	// X0 seeds the first N grid values; nil draws them at random.
	X0 []float64
	// N is the number of grid steps per delay interval tau, giving a step
	// of tau/N.
	N int
	// Sample is the time between returned samples. It is rounded to a whole
	// number of grid steps; choose it so that tau/Sample divides N.
	Sample float64
	// Discard counts whole delay intervals, so N*Discard grid values are
	// dropped as transient.
	Discard int
	// Rand is used only when X0 is nil. Nil means dynamo.DefaultSource.
	Rand dynamo.Source
}

func DefaultMackeyGlassOptions() MackeyGlassOptions {
	return MackeyGlassOptions{
		MackeyGlass: *physics.NewMackeyGlass(),
		Length:      10000,
		N:           1000,
		Sample:      0.46,
		Discard:     250,
	}
}

// MackeyGlass generates a time series of the Mackey-Glass delay equation
//
//	dx/dt = -b*x(t) + a*x(t-tau) / (1 + x(t-tau)^c)
//
// using the trapezoidal discretisation of Grassberger and Procaccia (1983),
// an N+1 dimensional map on a grid of step tau/N.
func MackeyGlass(opts MackeyGlassOptions) ([]float64, error) {
	if err := checkLength(opts.Length, opts.Discard); err != nil {
		return nil, err
	}
	if opts.N < 1 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", dynamo.ErrParameterBounds, opts.N)
	}
	if err := checkPositive("tau", opts.Tau); err != nil {
		return nil, err
	}
	if err := checkPositive("sample", opts.Sample); err != nil {
		return nil, err
	}
	if err := dynamo.CheckInitial(opts.X0, opts.N); err != nil {
		return nil, err
	}
	sub, err := stride(float64(opts.N) * opts.Sample / opts.Tau)
	if err != nil {
		return nil, err
	}

	n := opts.N
	grids := n*opts.Discard + sub*opts.Length
	x := make([]float64, max(grids, n))

	if opts.X0 != nil {
		copy(x, opts.X0)
	} else {
		src := dynamo.OrDefault(opts.Rand)
		for i := 0; i < n; i++ {
			x[i] = opts.DefaultValue() + dynamo.Symmetric(src, delaySpread)
		}
	}

	a, b := opts.Coefficients(n)
	f := opts.Feedback

	// The history before the seeded window is held at its first value.
	prev := f(x[0])
	for i := n - 1; i < grids-1; i++ {
		cur := f(x[i-n+1])
		x[i+1] = a*x[i] + b*(prev+cur)
		prev = cur
	}

	out := make([]float64, opts.Length)
	for j := range out {
		out[j] = x[n*opts.Discard+j*sub]
	}
	return out, nil
}
