// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ cookbook sections (Lowpass,
// Highpass, Bandpass, Notch, Allpass, Peak, shelves) and Butterworth
// cascades. Every design is bilinear-transformed and divided by a0, so the
// result plugs directly into a DF2T section. Invalid frequencies yield zero
// coefficients (or a nil cascade).
package design
