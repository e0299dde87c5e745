package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n int, freq float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i))
	}
	return x
}

func TestPeriodogram_Sine(t *testing.T) {
	// 1000 samples, 50 cycles: the bin at 0.05 holds all the power.
	x := sine(1000, 0.05)
	freqs, power := Periodogram(x)

	require.Len(t, freqs, 501)
	require.Len(t, power, 501)
	assert.InDelta(t, 0.5, freqs[500], 1e-12)

	total := BandPower(freqs, power, 0, 0.5)
	inBand := BandPower(freqs, power, 0.049, 0.051)
	assert.InDelta(t, 1.0, inBand/total, 1e-9)
}

func TestPeriodogram_OddLength(t *testing.T) {
	freqs, power := Periodogram(sine(999, 0.1))
	require.Len(t, freqs, 500)
	require.Len(t, power, 500)
	assert.InDelta(t, 0.1, DominantFrequency(sine(999, 0.1)), 1.0/999)
}

func TestPeriodogram_Empty(t *testing.T) {
	freqs, power := Periodogram(nil)
	assert.Nil(t, freqs)
	assert.Nil(t, power)
	assert.Equal(t, 0.0, DominantFrequency([]float64{1}))
}

func TestSummarize(t *testing.T) {
	states := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}
	s := Summarize(states)

	require.Len(t, s, 2)
	assert.InDelta(t, 2.5, s[0].Mean, 1e-12)
	assert.InDelta(t, 1.25, s[0].Variance, 1e-12)
	assert.Equal(t, 1.0, s[0].Min)
	assert.Equal(t, 4.0, s[0].Max)
	assert.InDelta(t, 25.0, s[1].Mean, 1e-12)

	assert.Equal(t, []float64{10, 20, 30, 40}, Column(states, 1))
	assert.Nil(t, Summarize(nil))
}
