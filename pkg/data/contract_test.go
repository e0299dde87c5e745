package data_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosdata/pkg/data"
	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// generate runs one generator with a fixed seed and returns the samples as
// rows so every generator can be checked the same way.
type generate func(length, discard int, seed uint64) ([][]float64, error)

func states(s []dynamo.State) [][]float64 {
	out := make([][]float64, len(s))
	for i := range s {
		out[i] = s[i]
	}
	return out
}

func scalars(x []float64) [][]float64 {
	out := make([][]float64, len(x))
	for i := range x {
		out[i] = []float64{x[i]}
	}
	return out
}

var generators = map[string]generate{
	"henon": func(length, discard int, seed uint64) ([][]float64, error) {
		opts := data.DefaultHenonOptions()
		opts.Length, opts.Discard, opts.Rand = length, discard, dynamo.NewSource(seed)
		x, err := data.Henon(opts)
		return states(x), err
	},
	"ikeda": func(length, discard int, seed uint64) ([][]float64, error) {
		opts := data.DefaultIkedaOptions()
		opts.Length, opts.Discard, opts.Rand = length, discard, dynamo.NewSource(seed)
		x, err := data.Ikeda(opts)
		return states(x), err
	},
	"lorenz": func(length, discard int, seed uint64) ([][]float64, error) {
		opts := data.DefaultLorenzOptions()
		opts.Length, opts.Discard, opts.Rand = length, discard, dynamo.NewSource(seed)
		_, x, err := data.Lorenz(context.Background(), opts)
		return states(x), err
	},
	"roessler": func(length, discard int, seed uint64) ([][]float64, error) {
		opts := data.DefaultRoesslerOptions()
		opts.Length, opts.Discard, opts.Rand = length, discard, dynamo.NewSource(seed)
		_, x, err := data.Roessler(context.Background(), opts)
		return states(x), err
	},
	"mackey-glass": func(length, discard int, seed uint64) ([][]float64, error) {
		opts := data.DefaultMackeyGlassOptions()
		opts.Length, opts.Discard, opts.Rand = length, discard, dynamo.NewSource(seed)
		x, err := data.MackeyGlass(opts)
		return scalars(x), err
	},
	"falpha": func(length, _ int, seed uint64) ([][]float64, error) {
		opts := data.DefaultFAlphaOptions()
		opts.Length, opts.Rand = length, dynamo.NewSource(seed)
		x, err := data.FAlpha(opts)
		return scalars(x), err
	},
}

var _ = Describe("Generators", func() {
	for name, gen := range generators {
		Context(name, func() {
			It("returns exactly the requested number of samples", func() {
				for _, length := range []int{2, 3, 37} {
					x, err := gen(length, 5, 1)
					Expect(err).NotTo(HaveOccurred())
					Expect(x).To(HaveLen(length))
				}
			})

			It("is reproducible for a fixed seed", func() {
				a, err := gen(64, 10, 42)
				Expect(err).NotTo(HaveOccurred())
				b, err := gen(64, 10, 42)
				Expect(err).NotTo(HaveOccurred())
				Expect(a).To(Equal(b))
			})

			It("depends on the seed", func() {
				a, err := gen(64, 10, 1)
				Expect(err).NotTo(HaveOccurred())
				b, err := gen(64, 10, 2)
				Expect(err).NotTo(HaveOccurred())
				Expect(a).NotTo(Equal(b))
			})

			It("produces finite samples", func() {
				x, err := gen(200, 20, 7)
				Expect(err).NotTo(HaveOccurred())
				for _, row := range x {
					Expect(dynamo.State(row).IsValid()).To(BeTrue())
				}
			})

			It("rejects a non-positive length", func() {
				_, err := gen(0, 0, 1)
				Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			})
		})
	}
})

var _ = Describe("Initial conditions", func() {
	It("rejects a Mackey-Glass history of the wrong length", func() {
		opts := data.DefaultMackeyGlassOptions()
		opts.Length = 10
		opts.X0 = []float64{0.5, 0.5, 0.5}
		_, err := data.MackeyGlass(opts)
		Expect(err).To(MatchError(dynamo.ErrInvalidInitialCondition))
	})

	It("uses an explicit zero vector as given", func() {
		opts := data.DefaultIkedaOptions()
		opts.Length = 1
		opts.X0 = dynamo.State{0, 0}
		opts.Discard = 0
		x, err := data.Ikeda(opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(x[0]).To(Equal(dynamo.State{0, 0}))
	})

	It("cancels a flow integration", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		opts := data.DefaultLorenzOptions()
		opts.Length = 2000
		_, _, err := data.Lorenz(ctx, opts)
		Expect(err).To(MatchError(dynamo.ErrContextCanceled))
		Expect(err).To(MatchError(context.Canceled))
	})
})
