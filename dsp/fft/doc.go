// Package fft provides plan-based discrete Fourier transforms of any
// length.
//
// A Plan is built once for a length, kind (C2C, R2C, C2R) and direction,
// and executed any number of times without allocating. Forward transforms
// are unscaled; backward transforms divide by N. Real transforms use the
// Hermitian-packed half spectrum of N/2+1 bins.
//
// The complex core is provided by a pluggable backend chosen per plan or
// process-wide:
//
//   - "native": in-tree radix-2 Cooley–Tukey, Bluestein for other lengths
//   - "algofft": github.com/MeKo-Christian/algo-fft power-of-two kernels,
//     Bluestein on top for other lengths
//   - "gonum": gonum.org/v1/gonum/dsp/fourier
//   - "godsp": github.com/mjibson/go-dsp/fft power-of-two path, Bluestein
//     on top for other lengths
//
// All backends honor the same buffer contract and scaling. A Plan is not
// safe for concurrent use; use one plan per goroutine.
package fft
