package envelope

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
	"github.com/tphakala/simd/f64"
)

// Autocorrelation returns r[k] = Σ x[i]·x[i+k] for k = 0..order.
func Autocorrelation(x []float64, order int) ([]float64, error) {
	if order < 0 {
		return nil, fmt.Errorf("envelope: order %d: %w", order, core.ErrOutOfRange)
	}

	if len(x) == 0 || order >= len(x) {
		return nil, fmt.Errorf("envelope: order %d needs more than %d samples: %w",
			order, len(x), core.ErrInvalidSize)
	}

	r := make([]float64, order+1)
	n := len(x)

	for k := range r {
		r[k] = f64.DotProduct(x[:n-k], x[k:])
	}

	return r, nil
}

// LevinsonDurbin solves the normal equations for the predictor
// A(z) = 1 + a[1]z^-1 + ... + a[p]z^-p from autocorrelation r[0..p].
// It returns a (a[0] = 1) and the final prediction error.
func LevinsonDurbin(r []float64) ([]float64, float64, error) {
	if len(r) == 0 {
		return nil, 0, fmt.Errorf("envelope: empty autocorrelation: %w", core.ErrInvalidSize)
	}

	if !(r[0] > 0) {
		return nil, 0, fmt.Errorf("envelope: r[0] = %g: %w", r[0], core.ErrInternal)
	}

	p := len(r) - 1
	a := make([]float64, p+1)
	prev := make([]float64, p+1)
	a[0] = 1
	e := r[0]

	for i := 1; i <= p; i++ {
		acc := r[i]
		for j := 1; j < i; j++ {
			acc += a[j] * r[i-j]
		}

		k := -acc / e

		copy(prev, a)

		for j := 1; j < i; j++ {
			a[j] = prev[j] + k*prev[i-j]
		}

		a[i] = k
		e *= 1 - k*k

		// A perfectly predictable signal leaves nothing for higher orders.
		if e <= 0 {
			e = 0
			break
		}
	}

	return a, e, nil
}

// LPC fits an order-p all-pole model to x with the autocorrelation method.
func LPC(x []float64, order int) ([]float64, float64, error) {
	if order < 1 {
		return nil, 0, fmt.Errorf("envelope: order %d: %w", order, core.ErrOutOfRange)
	}

	r, err := Autocorrelation(x, order)
	if err != nil {
		return nil, 0, err
	}

	return LevinsonDurbin(r)
}

// LPCSpectrum samples gain/|A(e^jθ)| at θ = 2πk/nfft for k = 0..nfft-1.
func LPCSpectrum(a []float64, gain float64, nfft int) ([]float64, error) {
	if len(a) == 0 {
		return nil, fmt.Errorf("envelope: empty predictor: %w", core.ErrInvalidSize)
	}

	if nfft < len(a) {
		return nil, fmt.Errorf("envelope: nfft %d shorter than predictor %d: %w",
			nfft, len(a), core.ErrInvalidSize)
	}

	if !core.IsFinite(gain) {
		return nil, fmt.Errorf("envelope: gain %g: %w", gain, core.ErrOutOfRange)
	}

	plan, err := fft.NewPlan(nfft, fft.C2C, fft.Forward)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	buf := make([]complex128, nfft)
	core.RealToComplex(buf, a)

	if err := plan.Execute(buf, buf); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	out := make([]float64, nfft)
	for k, v := range buf {
		out[k] = gain / math.Max(cmplx.Abs(v), logFloor)
	}

	return out, nil
}

// SpectralEnvelope fits an order-p LPC model to x and samples its
// envelope on an nfft grid with gain sqrt(prediction error).
func SpectralEnvelope(x []float64, order, nfft int) ([]float64, error) {
	a, e, err := LPC(x, order)
	if err != nil {
		return nil, err
	}

	return LPCSpectrum(a, math.Sqrt(e), nfft)
}
