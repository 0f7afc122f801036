package fir

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/window"
	"github.com/tphakala/simd/f64"
)

// DesignLowpass returns a numTaps windowed-sinc low-pass with cutoff fc as a
// fraction of Nyquist, symmetric about (numTaps−1)/2 and scaled to unit DC
// gain. Supported windows are rectangular, Hamming, Hann and Blackman.
func DesignLowpass(numTaps int, fc float64, wt window.Type) ([]float64, error) {
	if numTaps <= 0 {
		return nil, fmt.Errorf("fir: taps %d: %w", numTaps, core.ErrInvalidSize)
	}

	if !(fc > 0 && fc < 1) {
		return nil, fmt.Errorf("fir: cutoff %g outside (0, 1): %w", fc, core.ErrOutOfRange)
	}

	switch wt {
	case window.TypeRectangular, window.TypeHamming, window.TypeHann, window.TypeBlackman:
	default:
		return nil, fmt.Errorf("fir: window %v: %w", wt, core.ErrOutOfRange)
	}

	w := window.Generate(wt, numTaps)
	h := make([]float64, numTaps)
	center := float64(numTaps-1) / 2

	for n := range h {
		h[n] = fc * sinc(fc*(float64(n)-center)) * w[n]
	}

	// Hann with one or two taps is all zeros; leave it unnormalized.
	if sum := f64.Sum(h); sum != 0 {
		f64.Scale(h, h, 1/sum)
	}

	return h, nil
}

// DesignHighpass returns an odd-length high-pass by spectral inversion of
// the matching low-pass.
func DesignHighpass(numTaps int, fc float64, wt window.Type) ([]float64, error) {
	if numTaps%2 == 0 {
		return nil, fmt.Errorf("fir: highpass needs odd taps, got %d: %w", numTaps, core.ErrInvalidSize)
	}

	h, err := DesignLowpass(numTaps, fc, wt)
	if err != nil {
		return nil, err
	}

	for i := range h {
		h[i] = -h[i]
	}

	h[numTaps/2]++

	return h, nil
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
