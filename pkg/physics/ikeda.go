package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// Ikeda is the planar map modelling light in a nonlinear optical ring cavity.
type Ikeda struct{ Alpha, Beta, Gamma, Mu float64 }

func NewIkeda() *Ikeda        { return &Ikeda{6.0, 0.4, 1.0, 0.9} }
func (k Ikeda) StateDim() int { return 2 }

// Next rotates the point by phi = beta - alpha/(1+x^2+y^2), contracts it by
// mu and shifts it by gamma along x.
func (k Ikeda) Next(s dynamo.State) dynamo.State {
	phi := k.Beta - k.Alpha/(1+s[0]*s[0]+s[1]*s[1])
	sin, cos := math.Sincos(phi)
	return dynamo.State{
		k.Gamma + k.Mu*(s[0]*cos-s[1]*sin),
		k.Mu * (s[0]*sin + s[1]*cos),
	}
}

func (k Ikeda) DefaultState() dynamo.State { return dynamo.State{0.0, 0.0} }

func (k Ikeda) Params() map[string]float64 {
	return map[string]float64{"alpha": k.Alpha, "beta": k.Beta, "gamma": k.Gamma, "mu": k.Mu}
}

func (k *Ikeda) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		k.Alpha = v
	case "beta":
		k.Beta = v
	case "gamma":
		k.Gamma = v
	case "mu":
		k.Mu = v
	default:
		return fmt.Errorf("ikeda: %w %q", dynamo.ErrUnknownParam, n)
	}
	return nil
}
