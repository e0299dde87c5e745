// Package dynamo provides the core primitives shared by the series generators.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: vector representing a system state
//   - [System]: interface for continuous flows (dX/dt = f(X, t))
//   - [Map]: interface for discrete recurrences (X' = f(X))
//   - [Stepper]: single-step numerical integrator
//   - [Solver]: integrates a [System] over a time grid
//   - [Source]: uniform random variates in [0, 1)
//
// # Example
//
//	sys := physics.NewLorenz()
//	solver := integrators.NewGridSolver(integrators.NewRK4())
//	states, err := solver.Solve(ctx, sys, x0, times)
//
// # Randomness
//
// Generators never hold random state of their own. Callers wanting
// reproducible output pass a seeded [Source]; a nil source falls back to
// [DefaultSource], which draws from the process-wide math/rand/v2 stream.
package dynamo
