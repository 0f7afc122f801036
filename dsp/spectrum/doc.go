// Package spectrum provides spectrum-domain utilities: fftshift and
// ifftshift, phase wrapping and unwrapping, and magnitude/power/phase
// extraction from complex bins produced by package fft.
package spectrum
