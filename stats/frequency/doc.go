// Package frequency computes descriptors of one-sided magnitude spectra:
// level figures plus centroid, spread, flatness, rolloff and -3 dB
// bandwidth. FromSignal runs the window and real FFT first.
package frequency
