// Package stft implements a short-time Fourier transform engine.
//
// Analysis multiplies each frame by the window and runs a forward C2C FFT.
// Synthesis runs the scaled inverse FFT, applies the same window again and
// overlap-adds into caller buffers; the accumulated Σw² is the normalizer
// that completes reconstruction for COLA window and hop pairs.
package stft
