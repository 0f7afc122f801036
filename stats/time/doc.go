// Package time computes time-domain statistics of real signals: compensated
// sums, Welford moments, extrema, crest factor, zero crossings and
// correlation. StreamingStats accumulates the same figures block by block.
package time
