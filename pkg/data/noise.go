package data

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

type FAlphaOptions struct {
	// Length is the number of samples returned.
	Length int
	// Alpha is the exponent in (1/f)^alpha. 0 is white noise, 1 pink,
	// 2 Brownian.
	Alpha float64
	// FL and FU are optional lower and upper cutoff frequencies in cycles
	// per sample. Power below FL and above FU is removed. Nil disables a cutoff.
	FL, FU *float64
	// Mean and Var are the exact sample mean and (population) variance of
	// the returned series.
	Mean, Var float64
	// Rand draws the spectral phases. Nil means dynamo.DefaultSource.
	Rand dynamo.Source
}

func DefaultFAlphaOptions() FAlphaOptions {
	return FAlphaOptions{
		Length: 8192,
		Alpha:  1.0,
		Mean:   0.0,
		Var:    1.0,
	}
}

// Cutoff returns a pointer to f for use as FAlphaOptions.FL or FU.
func Cutoff(f float64) *float64 { return &f }

// FAlpha generates (1/f)^alpha noise by inverting a power spectrum with
// random phases, following Voss (1988).
//
// Because the discrete Fourier transform treats its input as periodic, the
// result is periodic too: x[i] and x[i+Length] coincide. To avoid this,
// generate a series two or three times longer than needed and trim it.
func FAlpha(opts FAlphaOptions) ([]float64, error) {
	if opts.Length < 1 {
		return nil, fmt.Errorf("%w: length must be positive, got %d", dynamo.ErrParameterBounds, opts.Length)
	}
	if opts.Var < 0 || math.IsNaN(opts.Var) {
		return nil, fmt.Errorf("%w: variance must be non-negative, got %g", dynamo.ErrParameterBounds, opts.Var)
	}

	fft := fourier.NewFFT(opts.Length)
	bins := opts.Length/2 + 1

	// P(0) = 0 removes the arbitrary mean.
	power := make([]float64, bins)
	passband := false
	for i := 1; i < bins; i++ {
		f := fft.Freq(i)
		if opts.FL != nil && f < *opts.FL {
			continue
		}
		if opts.FU != nil && f > *opts.FU {
			continue
		}
		power[i] = math.Pow(f, -opts.Alpha)
		if math.IsInf(power[i], 0) {
			return nil, fmt.Errorf("%w: alpha %g overflows the spectrum", dynamo.ErrParameterBounds, opts.Alpha)
		}
		passband = passband || power[i] > 0
	}
	if !passband {
		return nil, dynamo.ErrEmptyPassband
	}

	src := dynamo.OrDefault(opts.Rand)
	coeff := make([]complex128, bins)
	for i := range coeff {
		phase := 2 * math.Pi * src.Float64()
		coeff[i] = cmplx.Rect(math.Sqrt(power[i]), phase)
	}

	// With an even number of points the Nyquist coefficient of a real
	// signal is real. The mean is already real since P(0) = 0.
	if opts.Length%2 == 0 {
		coeff[bins-1] = complex(cmplx.Abs(coeff[bins-1]*math.Sqrt2), 0)
	}

	x := fft.Sequence(nil, coeff)
	floats.Scale(1/float64(opts.Length), x)

	_, std := stat.PopMeanStdDev(x, nil)
	if std == 0 || math.IsNaN(std) {
		return nil, dynamo.ErrEmptyPassband
	}

	floats.Scale(math.Sqrt(opts.Var)/std, x)
	floats.AddConst(opts.Mean-stat.Mean(x, nil), x)
	return x, nil
}
