// Package dynamo provides the core primitives shared by the tslab generators.
//
// The package defines:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Series]: named, equally indexed columns of samples
//
// Errors returned by generators and transforms wrap one of the sentinel
// values in this package and can be tested with errors.Is:
//
//	if errors.Is(err, dynamo.ErrInvalidArgument) {
//	    // bad n, tau, delta_t, window, ...
//	}
package dynamo
