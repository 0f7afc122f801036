// Package hilbert computes the analytic signal of a real sequence with the
// FFT and derives instantaneous phase, frequency and envelope from it.
//
// The one-sided spectral filter keeps DC (and Nyquist for even lengths) at
// unity, doubles the positive-frequency bins and zeroes the negative ones,
// so the real part of the result reproduces the input.
package hilbert
