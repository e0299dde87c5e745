package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// MackeyGlass holds the constants of the delay differential equation
//
//	dx/dt = -b*x(t) + a*x(t-tau) / (1 + x(t-tau)^c)
type MackeyGlass struct{ A, B, C, Tau float64 }

func NewMackeyGlass() *MackeyGlass { return &MackeyGlass{0.2, 0.1, 10.0, 23.0} }

// Feedback is the delayed production term u / (1 + u^c).
func (m MackeyGlass) Feedback(u float64) float64 {
	return u / (1 + math.Pow(u, m.C))
}

// Coefficients returns the weights of the trapezoidal recurrence
// x[i+1] = A*x[i] + B*(f(x[i-n]) + f(x[i-n+1])) on a grid of step tau/n.
func (m MackeyGlass) Coefficients(n int) (a, b float64) {
	fn := float64(n)
	den := 2*fn + m.B*m.Tau
	return (2*fn - m.B*m.Tau) / den, m.A * m.Tau / den
}

func (m MackeyGlass) DefaultValue() float64 { return 0.5 }

func (m MackeyGlass) Params() map[string]float64 {
	return map[string]float64{"a": m.A, "b": m.B, "c": m.C, "tau": m.Tau}
}

func (m *MackeyGlass) SetParam(n string, v float64) error {
	switch n {
	case "a":
		m.A = v
	case "b":
		m.B = v
	case "c":
		m.C = v
	case "tau":
		m.Tau = v
	default:
		return fmt.Errorf("mackey-glass: %w %q", dynamo.ErrUnknownParam, n)
	}
	return nil
}
