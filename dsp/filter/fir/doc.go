// Package fir provides FIR design and filtering.
//
// A [Filter] applies coefficients to a stream, keeping the last N−1 inputs
// so that block boundaries do not change the output. [Apply] and [ApplyFFT]
// filter a whole block from zero history; the latter uses a single
// power-of-two R2C convolution. A [Convolver] keeps those plans for reuse.
// [Filtfilt] runs a filter forward and backward for zero phase.
//
// [DesignLowpass] builds windowed-sinc low-pass taps normalized to unit DC
// gain.
package fir
