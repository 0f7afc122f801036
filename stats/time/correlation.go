package time

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/tphakala/simd/f64"
)

// Autocorrelation returns r[k] = Σ x[i]·x[i+k] for k = 0..maxLag.
func Autocorrelation(signal []float64, maxLag int) ([]float64, error) {
	if maxLag < 0 {
		return nil, fmt.Errorf("stats: lag %d: %w", maxLag, core.ErrOutOfRange)
	}

	if maxLag >= len(signal) {
		return nil, fmt.Errorf("stats: lag %d for %d samples: %w", maxLag, len(signal), core.ErrInvalidSize)
	}

	n := len(signal)
	r := make([]float64, maxLag+1)

	for k := range r {
		r[k] = f64.DotProduct(signal[:n-k], signal[k:])
	}

	return r, nil
}

// NormalizedAutocorrelation divides Autocorrelation by r[0]. An all-zero
// signal yields all zeros.
func NormalizedAutocorrelation(signal []float64, maxLag int) ([]float64, error) {
	r, err := Autocorrelation(signal, maxLag)
	if err != nil {
		return nil, err
	}

	if r[0] > 0 {
		f64.Scale(r, r, 1/r[0])
	}

	return r, nil
}

// CrossCorrelation returns c[maxLag+k] = Σ x[i]·y[i+k] for
// k = -maxLag..maxLag, summing over the overlap.
func CrossCorrelation(x, y []float64, maxLag int) ([]float64, error) {
	if maxLag < 0 {
		return nil, fmt.Errorf("stats: lag %d: %w", maxLag, core.ErrOutOfRange)
	}

	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("stats: empty input: %w", core.ErrInvalidSize)
	}

	out := make([]float64, 2*maxLag+1)

	for k := -maxLag; k <= maxLag; k++ {
		// Overlap: i in [max(0,-k), min(len(x), len(y)-k)).
		lo := max(0, -k)
		hi := min(len(x), len(y)-k)

		if hi > lo {
			out[maxLag+k] = f64.DotProduct(x[lo:hi], y[lo+k:hi+k])
		}
	}

	return out, nil
}
