// Package analysis characterizes sampled series.
//
//   - [PowerSpectrum]: magnitude spectrum via a radix-2 FFT
//   - [DominantPeriod]: period of the strongest non-DC frequency bin
//   - [DelayEmbedding]: (x[t-lag], x[t]) phase portrait of a scalar series
//   - [PhaseFromColumns]: phase portrait of two columns (e.g. Lorenz X/Z)
//   - [PoincareFromColumns]: points where one column crosses a threshold
//
// # Example
//
//	period, power := analysis.DominantPeriod(xs)
//	fmt.Printf("period: %.2f samples (power %.3f)\n", period, power)
package analysis
