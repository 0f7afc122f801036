// Package frame slices signals into overlapping frames and accumulates
// frames back with overlap-add.
//
// Centred framing places frame i at i·hop − frameLen/2 and fills samples
// outside the signal by reflection about the first and last sample.
// Non-centred framing starts at i·hop and zero-pads past the end.
package frame
