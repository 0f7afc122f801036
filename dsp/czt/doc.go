// Package czt computes the chirp Z-transform
//
//	X[k] = Σ_n x[n]·z_k^{-n},  z_k = A·W^{-k},  k = 0..M-1
//
// with Bluestein's algorithm on a power-of-two FFT plan from package fft.
// A Plan retains the chirps, the kernel spectrum and all scratch, so
// repeated execution does not allocate.
package czt
