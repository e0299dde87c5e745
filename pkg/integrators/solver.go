package integrators

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// cancelCheckInterval is how many grid points are integrated between
// context checks.
const cancelCheckInterval = 1024

// GridSolver integrates with exactly one fixed step per grid interval.
type GridSolver struct {
	stepper dynamo.Stepper
}

func NewGridSolver(stepper dynamo.Stepper) *GridSolver {
	return &GridSolver{stepper: stepper}
}

func (g *GridSolver) Solve(ctx context.Context, sys dynamo.System, x0 dynamo.State, times []float64) ([]dynamo.State, error) {
	if err := validateProblem(sys, x0, times); err != nil {
		return nil, err
	}

	states := make([]dynamo.State, len(times))
	x := x0.Clone()
	states[0] = x

	for k := 1; k < len(times); k++ {
		if err := checkContext(ctx, k, times[k-1], x); err != nil {
			return nil, err
		}

		x = g.stepper.Step(sys, x, times[k-1], times[k]-times[k-1])
		if !x.IsValid() {
			return nil, &dynamo.SimulationError{Step: k, Time: times[k], State: x, Wrapped: dynamo.ErrInvalidState}
		}
		states[k] = x
	}

	return states, nil
}

// AdaptiveSolver takes error-controlled substeps between grid points and
// reports the state reached at each grid time.
type AdaptiveSolver struct {
	stepper dynamo.AdaptiveStepper

	Tolerance float64
	MinDt     float64
	// MaxSteps bounds the attempted substeps per grid interval.
	MaxSteps int
}

func NewAdaptiveSolver(stepper dynamo.AdaptiveStepper, tol float64) *AdaptiveSolver {
	return &AdaptiveSolver{
		stepper:   stepper,
		Tolerance: tol,
		MinDt:     1e-12,
		MaxSteps:  500,
	}
}

func (a *AdaptiveSolver) Solve(ctx context.Context, sys dynamo.System, x0 dynamo.State, times []float64) ([]dynamo.State, error) {
	if err := validateProblem(sys, x0, times); err != nil {
		return nil, err
	}
	if a.Tolerance <= 0 {
		return nil, fmt.Errorf("%w: tolerance must be positive for adaptive stepping", dynamo.ErrParameterBounds)
	}

	states := make([]dynamo.State, len(times))
	x := x0.Clone()
	states[0] = x

	var h float64
	if len(times) > 1 {
		h = times[1] - times[0]
	}

	for k := 1; k < len(times); k++ {
		if err := checkContext(ctx, k, times[k-1], x); err != nil {
			return nil, err
		}

		t, tEnd := times[k-1], times[k]
		for attempts := 0; t < tEnd; attempts++ {
			if attempts >= a.MaxSteps {
				return nil, &dynamo.SimulationError{Step: k, Time: t, State: x, Wrapped: dynamo.ErrStepLimit}
			}

			step := math.Min(h, tEnd-t)
			xNew, hNew, err := a.stepper.StepAdaptive(sys, x, t, step, a.Tolerance)
			if errors.Is(err, ErrStepRejected) {
				if hNew < a.MinDt {
					return nil, &dynamo.SimulationError{Step: k, Time: t, State: x, Wrapped: dynamo.ErrStepTooSmall}
				}
				h = hNew
				continue
			}
			if err != nil {
				return nil, &dynamo.SimulationError{Step: k, Time: t, State: x, Wrapped: err}
			}

			if step >= tEnd-t {
				t = tEnd
			} else {
				t += step
			}
			x = xNew
			if step == h || hNew < h {
				h = hNew
			}
		}

		if !x.IsValid() {
			return nil, &dynamo.SimulationError{Step: k, Time: tEnd, State: x, Wrapped: dynamo.ErrInvalidState}
		}
		states[k] = x
	}

	return states, nil
}

func validateProblem(sys dynamo.System, x0 dynamo.State, times []float64) error {
	if len(x0) != sys.StateDim() {
		return fmt.Errorf("%w: expected %d values, got %d", dynamo.ErrInvalidInitialCondition, sys.StateDim(), len(x0))
	}
	if len(times) == 0 {
		return fmt.Errorf("%w: empty time grid", dynamo.ErrParameterBounds)
	}
	for k := 1; k < len(times); k++ {
		if !(times[k] > times[k-1]) {
			return fmt.Errorf("%w: time grid not strictly increasing at index %d", dynamo.ErrParameterBounds, k)
		}
	}
	if !x0.IsValid() {
		return &dynamo.SimulationError{Step: 0, Time: times[0], State: x0.Clone(), Wrapped: dynamo.ErrInvalidState}
	}
	return nil
}

func checkContext(ctx context.Context, step int, t float64, x dynamo.State) error {
	if step%cancelCheckInterval != 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return &dynamo.SimulationError{
			Step:    step,
			Time:    t,
			State:   x.Clone(),
			Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
		}
	default:
		return nil
	}
}
