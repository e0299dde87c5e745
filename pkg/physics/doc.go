// Package physics provides the dynamical systems behind the generators.
//
// Every model is a plain struct of its constants; the equations are methods
// on that struct so nothing is captured by closures:
//
//   - [Lorenz], [Rossler]: continuous flows implementing [dynamo.System]
//   - [Henon], [Ikeda]: planar maps implementing [dynamo.Map]
//   - [MackeyGlass]: delay equation feedback and discretisation weights
//
// All models implement [dynamo.Configurable] so constants can be set by name:
//
//	l := physics.NewLorenz()
//	if err := l.SetParam("rho", 99.96); err != nil {
//	    return err
//	}
package physics
