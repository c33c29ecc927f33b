// Package synthetic generates canonical test signals for time-series work.
//
//   - [MackeyGlass]: the Mackey-Glass delay-differential equation, Euler
//     integrated with a sliding history buffer and squashed through tanh
//   - [Lorenz]: the Lorenz attractor sampled on an evenly spaced grid
//   - [MSO]: the multiple sinewave oscillator, two sines with
//     incommensurable periods
//
// # Randomness
//
// Generators that need randomness take a [Source]. Passing the same seeded
// source state reproduces the same output bit for bit:
//
//	xs, err := synthetic.MackeyGlass(1000, 17, 10, synthetic.NewSource(42))
//
// A nil Source selects a non-deterministically seeded generator.
package synthetic
