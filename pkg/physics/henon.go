package physics

import (
	"fmt"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// Henon is the two-dimensional quadratic map of Hénon (1976).
type Henon struct{ A, B float64 }

func NewHenon() *Henon        { return &Henon{1.4, 0.3} }
func (h Henon) StateDim() int { return 2 }

// Next applies x' = 1 - a*x^2 + b*y, y' = x.
func (h Henon) Next(s dynamo.State) dynamo.State {
	return dynamo.State{1 - h.A*s[0]*s[0] + h.B*s[1], s[0]}
}

func (h Henon) DefaultState() dynamo.State { return dynamo.State{0.0, 0.9} }

func (h Henon) Params() map[string]float64 {
	return map[string]float64{"a": h.A, "b": h.B}
}

func (h *Henon) SetParam(n string, v float64) error {
	switch n {
	case "a":
		h.A = v
	case "b":
		h.B = v
	default:
		return fmt.Errorf("henon: %w %q", dynamo.ErrUnknownParam, n)
	}
	return nil
}
