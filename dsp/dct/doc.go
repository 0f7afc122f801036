// Package dct implements the DCT-II, DCT-III and DCT-IV with closed-form
// inverses.
//
//	DCT-II   X[k] = Σ x[n]·cos(π(n+½)k/N)
//	         x[n] = (2/N)(½X[0] + Σ_{k≥1} X[k]·cos(πk(n+½)/N))
//	DCT-III  Y[k] = x[0] + 2·Σ_{n≥1} x[n]·cos(πn(k+½)/N)
//	         x[n] = (1/N)·Σ Y[k]·cos(π(k+½)n/N)
//	DCT-IV   X[k] = Σ x[n]·cos(π(n+½)(k+½)/N)
//	         x[n] = (2/N)·Σ X[k]·cos(π(n+½)(k+½)/N)
//
// Transforms are direct O(N²) sums over a cached cosine table; callers
// needing O(N log N) build the DCT-II on top of package fft.
package dct
