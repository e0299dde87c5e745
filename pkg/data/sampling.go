package data

import (
	"fmt"
	"math"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// stride converts a ratio of sampling interval to step size into a whole
// number of steps. The ratio is rounded, so a sampling interval that is not
// an exact multiple of the step drifts slightly from the one requested.
func stride(ratio float64) (int, error) {
	s := math.Round(ratio)
	if math.IsNaN(s) || s < 1 {
		return 0, fmt.Errorf("%w: ratio %g rounds to %g", dynamo.ErrInvalidStride, ratio, s)
	}
	return int(s), nil
}

func checkLength(length, discard int) error {
	if length < 1 {
		return fmt.Errorf("%w: length must be positive, got %d", dynamo.ErrParameterBounds, length)
	}
	if discard < 0 {
		return fmt.Errorf("%w: discard must be non-negative, got %d", dynamo.ErrParameterBounds, discard)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", dynamo.ErrParameterBounds, name, v)
	}
	return nil
}
