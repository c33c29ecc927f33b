// Package transform applies elementary transforms to numeric series:
// differencing, simple and log returns, smoothing and supervised-learning
// windowing.
//
// Transforms never modify their input. Differencing-style transforms drop
// the leading periods that have no predecessor; smoothing preserves length
// and marks incomplete windows with NaN.
package transform
