package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for generator operations.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidInitialCondition indicates an initial condition whose size
	// does not match the system dimension.
	ErrInvalidInitialCondition = errors.New("dynamo: invalid initial condition")

	// ErrInvalidStride indicates a sampling ratio that rounds below one step.
	ErrInvalidStride = errors.New("dynamo: sampling stride must be at least one step")

	// ErrEmptyPassband indicates spectral cutoffs that remove every frequency bin.
	ErrEmptyPassband = errors.New("dynamo: empty passband (cutoffs remove all power)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the system does not define.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrContextCanceled indicates the integration was interrupted.
	ErrContextCanceled = errors.New("dynamo: integration canceled by context")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepLimit indicates the adaptive solver exhausted its step budget.
	ErrStepLimit = errors.New("dynamo: adaptive step budget exhausted")
)

// SimulationError wraps an error with integration context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// CheckInitial validates a caller supplied initial condition. A nil x0 means
// "not given" and is always accepted.
func CheckInitial(x0 State, dim int) error {
	if x0 == nil || len(x0) == dim {
		return nil
	}
	return fmt.Errorf("%w: expected %d values, got %d", ErrInvalidInitialCondition, dim, len(x0))
}
