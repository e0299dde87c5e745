package dynamo

import "math/rand/v2"

// Source supplies uniform variates in [0, 1). *rand.Rand from math/rand and
// math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns a Source backed by the process-wide math/rand/v2
// generator. It is safe for concurrent use but cannot be seeded.
func DefaultSource() Source { return globalSource{} }

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed))
}

// OrDefault returns src, or DefaultSource when src is nil.
func OrDefault(src Source) Source {
	if src == nil {
		return DefaultSource()
	}
	return src
}

// Symmetric draws a value uniformly from [-width, width).
func Symmetric(src Source, width float64) float64 {
	return width * (-1 + 2*src.Float64())
}

// Perturb returns center with every component shifted by an independent
// draw from [-width, width).
func Perturb(src Source, center State, width float64) State {
	x := make(State, len(center))
	for i, c := range center {
		x[i] = c + Symmetric(src, width)
	}
	return x
}
