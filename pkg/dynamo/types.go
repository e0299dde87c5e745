package dynamo

import (
	"context"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is a continuous flow dX/dt = Derive(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Map is a discrete recurrence X' = Next(X).
type Map interface {
	Next(x State) State
	StateDim() int
}

// Stepper advances a state by a single step of size dt.
type Stepper interface {
	Step(sys System, x State, t, dt float64) State
}

type AdaptiveStepper interface {
	Stepper
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

// Solver integrates sys from x0 over a monotonic time grid and returns one
// state per grid point, the first being x0 itself.
type Solver interface {
	Solve(ctx context.Context, sys System, x0 State, times []float64) ([]State, error)
}

// Configurable exposes the named constants of a system.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}
