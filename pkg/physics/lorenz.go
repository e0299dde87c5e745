package physics

import (
	"fmt"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// Lorenz holds the constants of the Lorenz (1963) convection model.
type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz       { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l Lorenz) StateDim() int { return 3 }

// Derive calculates the Lorenz attractor derivatives.
func (l Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{l.Sigma * (s[1] - s[0]), s[0]*(l.Rho-s[2]) - s[1], s[0]*s[1] - l.Beta*s[2]}
}

// DefaultState is the centre of the random initial-condition neighbourhood.
func (l Lorenz) DefaultState() dynamo.State { return dynamo.State{0.0, -0.01, 9.0} }

func (l Lorenz) Params() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	default:
		return fmt.Errorf("lorenz: %w %q", dynamo.ErrUnknownParam, n)
	}
	return nil
}
