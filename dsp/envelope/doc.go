// Package envelope estimates spectral envelopes.
//
// The cepstral path computes the real cepstrum of a signal and folds it
// into its causal part to rebuild a minimum-phase spectrum or impulse
// response with the same magnitude. The LPC path fits an all-pole model
// with the autocorrelation method and Levinson–Durbin recursion, and
// samples gain/|A(e^jθ)| on an FFT grid.
package envelope
