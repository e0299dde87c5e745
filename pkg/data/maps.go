package data

import (
	"github.com/san-kum/chaosdata/pkg/dynamo"
	"github.com/san-kum/chaosdata/pkg/physics"
)

// Half-widths of the random neighbourhood around each map's canonical start.
const (
	henonSpread = 0.01
	ikedaSpread = 0.1
)

type HenonOptions struct {
	physics.Henon

	// Length is the number of points returned.
	Length int
	// X0 is the initial condition; nil draws a random one.
	X0 dynamo.State
	// Discard is the number of iterations dropped to remove transients.
	Discard int
	// Rand is used only when X0 is nil. Nil means dynamo.DefaultSource.
	Rand dynamo.Source
}

func DefaultHenonOptions() HenonOptions {
	return HenonOptions{
		Henon:   *physics.NewHenon(),
		Length:  10000,
		Discard: 500,
	}
}

// Henon generates a trajectory of the Hénon map
//
//	x' = 1 - a*x^2 + b*y
//	y' = x
func Henon(opts HenonOptions) ([]dynamo.State, error) {
	if err := checkMap(opts.X0, opts.Henon, opts.Length, opts.Discard); err != nil {
		return nil, err
	}

	x0 := opts.X0
	if x0 == nil {
		x0 = dynamo.Perturb(dynamo.OrDefault(opts.Rand), opts.Henon.DefaultState(), henonSpread)
	}

	return iterate(opts.Henon, x0, opts.Length, opts.Discard), nil
}

type IkedaOptions struct {
	physics.Ikeda

	Length  int
	X0      dynamo.State
	Discard int
	Rand    dynamo.Source
}

func DefaultIkedaOptions() IkedaOptions {
	return IkedaOptions{
		Ikeda:   *physics.NewIkeda(),
		Length:  10000,
		Discard: 500,
	}
}

// Ikeda generates a trajectory of the Ikeda map
//
//	phi = beta - alpha/(1 + x^2 + y^2)
//	x'  = gamma + mu*(x*cos(phi) - y*sin(phi))
//	y'  = mu*(x*sin(phi) + y*cos(phi))
func Ikeda(opts IkedaOptions) ([]dynamo.State, error) {
	if err := checkMap(opts.X0, opts.Ikeda, opts.Length, opts.Discard); err != nil {
		return nil, err
	}

	x0 := opts.X0
	if x0 == nil {
		x0 = dynamo.Perturb(dynamo.OrDefault(opts.Rand), opts.Ikeda.DefaultState(), ikedaSpread)
	}

	return iterate(opts.Ikeda, x0, opts.Length, opts.Discard), nil
}

func checkMap(x0 dynamo.State, m dynamo.Map, length, discard int) error {
	if err := checkLength(length, discard); err != nil {
		return err
	}
	return dynamo.CheckInitial(x0, m.StateDim())
}

// iterate runs length+discard states of m starting at x0 and returns the
// last length of them.
func iterate(m dynamo.Map, x0 dynamo.State, length, discard int) []dynamo.State {
	x := make([]dynamo.State, length+discard)
	x[0] = x0.Clone()
	for i := 1; i < len(x); i++ {
		x[i] = m.Next(x[i-1])
	}
	return x[discard:]
}
