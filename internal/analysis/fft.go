package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Periodogram returns the one-sided frequencies (cycles per sample) and the
// power |X_k|^2/n of a real series for k = 0 .. n/2. Unlike a radix-2 FFT it
// accepts any length.
func Periodogram(data []float64) (freqs, power []float64) {
	n := len(data)
	if n == 0 {
		return nil, nil
	}

	spectrum := fft.FFTReal(data)
	bins := n/2 + 1
	freqs = make([]float64, bins)
	power = make([]float64, bins)

	for k := 0; k < bins; k++ {
		freqs[k] = float64(k) / float64(n)
		a := cmplx.Abs(spectrum[k])
		power[k] = a * a / float64(n)
	}

	return freqs, power
}

// BandPower sums the periodogram power at frequencies within [lo, hi].
func BandPower(freqs, power []float64, lo, hi float64) float64 {
	sum := 0.0
	for k, f := range freqs {
		if f >= lo && f <= hi {
			sum += power[k]
		}
	}
	return sum
}

// DominantFrequency returns the non-zero frequency carrying the most power,
// or 0 for series shorter than two samples.
func DominantFrequency(data []float64) float64 {
	freqs, power := Periodogram(data)
	if len(power) < 2 {
		return 0
	}
	return freqs[1+floats.MaxIdx(power[1:])]
}
