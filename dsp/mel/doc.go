// Package mel maps power spectra onto the mel scale and computes MFCCs.
//
// A Bank holds n triangular filters spaced uniformly in mel between fmin
// and fmax, each normalized to unit sum. LogMel takes the log of the
// filter outputs, and an MFCC plan applies a DCT across the mel axis with
// optional sinusoidal liftering.
package mel
