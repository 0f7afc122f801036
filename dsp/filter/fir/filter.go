package fir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/tphakala/simd/f64"
)

// Filter implements a streaming direct-form FIR filter. The last N−1 inputs
// live in a ring that is stored twice so the oldest-to-newest window is
// always contiguous.
type Filter struct {
	coeffs []float64
	rev    []float64 // h[N-1], ..., h[1]
	ring   []float64 // 2·(N−1)
	pos    int
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
func New(coeffs []float64) (*Filter, error) {
	if coeffs == nil {
		return nil, fmt.Errorf("fir: coefficients: %w", core.ErrNullPointer)
	}

	if len(coeffs) == 0 {
		return nil, fmt.Errorf("fir: no coefficients: %w", core.ErrInvalidSize)
	}

	m := len(coeffs) - 1
	f := &Filter{
		coeffs: append([]float64(nil), coeffs...),
		rev:    make([]float64, m),
		ring:   make([]float64, 2*m),
	}

	for j := range m {
		f.rev[j] = coeffs[m-j]
	}

	return f, nil
}

// ProcessSample filters one input sample.
//
//	y[n] = h[0]·x[n] + sum_{k=1}^{N-1} h[k]·x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	m := len(f.rev)
	y := f.coeffs[0] * x

	if m == 0 {
		return y
	}

	y += f64.DotProduct(f.rev, f.ring[f.pos:f.pos+m])

	f.ring[f.pos] = x
	f.ring[f.pos+m] = x

	f.pos++
	if f.pos == m {
		f.pos = 0
	}

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("fir: dst=%d src=%d: %w", len(dst), len(src), core.ErrInvalidSize)
	}

	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}

	return nil
}

// Reset clears the history to zero.
func (f *Filter) Reset() {
	clear(f.ring)
	f.pos = 0
}

// History returns the last N−1 inputs, oldest first.
func (f *Filter) History() []float64 {
	m := len(f.rev)
	return append([]float64(nil), f.ring[f.pos:f.pos+m]...)
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// Response computes the complex frequency response H(e^{jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	return response(f.coeffs, 2*math.Pi*freqHz/sampleRate)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

func response(h []float64, w float64) complex128 {
	var acc complex128
	for k, c := range h {
		s, co := math.Sincos(-w * float64(k))
		acc += complex(c*co, c*s)
	}

	return acc
}
