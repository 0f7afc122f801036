// Package wavio reads and writes WAV files as per-channel float64 slices.
//
// Integer PCM of 16, 24 and 32 bits maps to floats as value/2^(bits-1);
// writing rounds to nearest and saturates. 32-bit IEEE float files are
// carried through unscaled.
package wavio
