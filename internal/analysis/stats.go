package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the sample statistics of one component of a series.
type Summary struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	// DominantFreq is in cycles per sample.
	DominantFreq float64 `json:"dominant_freq"`
}

// Summarize computes a Summary per component of a series of equal-width
// states. The variance is the population variance.
func Summarize(states [][]float64) []Summary {
	if len(states) == 0 {
		return nil
	}

	dim := len(states[0])
	out := make([]Summary, dim)

	for d := 0; d < dim; d++ {
		column := Column(states, d)
		mean, variance := stat.PopMeanVariance(column, nil)
		out[d] = Summary{
			Mean:         mean,
			Variance:     variance,
			Min:          floats.Min(column),
			Max:          floats.Max(column),
			DominantFreq: DominantFrequency(column),
		}
	}

	return out
}

// Column extracts component d from a series of states.
func Column(states [][]float64, d int) []float64 {
	col := make([]float64, len(states))
	for i, s := range states {
		col[i] = s[d]
	}
	return col
}
