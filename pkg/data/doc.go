// Package data generates time series of well-known noise processes and
// low-dimensional chaotic systems, for use as test fixtures by nonlinear
// time series analysis code.
//
// Noise:
//
//   - [FAlpha]: (1/f)^alpha noise by spectral synthesis
//
// Deterministic systems:
//
//   - [Henon], [Ikeda]: planar maps
//   - [Lorenz], [Roessler]: flows integrated on a fine grid and subsampled
//   - [MackeyGlass]: discretised delay differential equation
//
// Most parameters and initial conditions follow Appendix A of Sprott,
// "Chaos and Time-Series Analysis" (2003). Each generator takes an options
// struct; start from the matching Default*Options function and override
// what you need:
//
//	opts := data.DefaultLorenzOptions()
//	opts.Length = 5000
//	opts.Rand = dynamo.NewSource(42)
//	times, states, err := data.Lorenz(ctx, opts)
//
// Every generator returns exactly Length samples with the initial transient
// already discarded. An initial condition X0 of nil means "draw one at
// random near the canonical starting point"; any non-nil X0, including a
// zero vector, is used as given.
package data
