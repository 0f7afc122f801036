package hilbert

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
)

// Plan computes analytic signals of a fixed length without allocating.
type Plan struct {
	n    int
	r2c  *fft.Plan
	inv  *fft.Plan
	half []complex128
}

// NewPlan prepares the transforms for length-n inputs.
func NewPlan(n int, opts ...fft.Option) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("hilbert: length %d: %w", n, core.ErrInvalidSize)
	}

	r2c, err := fft.NewPlan(n, fft.R2C, fft.Forward, opts...)
	if err != nil {
		return nil, fmt.Errorf("hilbert: %w", err)
	}

	inv, err := fft.NewPlan(n, fft.C2C, fft.Backward, opts...)
	if err != nil {
		return nil, fmt.Errorf("hilbert: %w", err)
	}

	return &Plan{
		n:    n,
		r2c:  r2c,
		inv:  inv,
		half: make([]complex128, n/2+1),
	}, nil
}

// Len returns the input length.
func (p *Plan) Len() int { return p.n }

// Analytic writes the analytic signal of src into dst. Both have length N.
func (p *Plan) Analytic(dst []complex128, src []float64) error {
	if p == nil || dst == nil || src == nil {
		return fmt.Errorf("hilbert: %w", core.ErrNullPointer)
	}

	if len(src) != p.n || len(dst) != p.n {
		return fmt.Errorf("hilbert: plan length %d given dst=%d src=%d: %w",
			p.n, len(dst), len(src), core.ErrInvalidSize)
	}

	if err := p.r2c.ExecuteR2C(p.half, src); err != nil {
		return fmt.Errorf("hilbert: %w", err)
	}

	n := p.n
	clear(dst)
	dst[0] = p.half[0]

	// Positive bins 1..ceil(N/2)-1 are doubled; an even N keeps Nyquist at
	// unity and everything above stays zero.
	last := (n - 1) / 2
	for k := 1; k <= last; k++ {
		dst[k] = 2 * p.half[k]
	}

	if n%2 == 0 && n > 1 {
		dst[n/2] = p.half[n/2]
	}

	if err := p.inv.Execute(dst, dst); err != nil {
		return fmt.Errorf("hilbert: %w", err)
	}

	return nil
}

// Analytic returns the analytic signal of x using a temporary plan.
func Analytic(x []float64) ([]complex128, error) {
	p, err := NewPlan(len(x))
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(x))
	if err := p.Analytic(out, x); err != nil {
		return nil, err
	}

	return out, nil
}

// InstantaneousPhase returns the unwrapped phase of z, accumulating the
// angle between successive samples so no 2π jumps appear.
func InstantaneousPhase(z []complex128) []float64 {
	if len(z) == 0 {
		return nil
	}

	phi := make([]float64, len(z))
	phi[0] = math.Atan2(imag(z[0]), real(z[0]))

	for i := 1; i < len(z); i++ {
		d := z[i] * cmplx.Conj(z[i-1])
		phi[i] = phi[i-1] + math.Atan2(imag(d), real(d))
	}

	return phi
}

// InstantaneousFrequency differentiates a phase track into Hz. The first
// sample is 0.
func InstantaneousFrequency(phi []float64, fs float64) []float64 {
	if len(phi) == 0 {
		return nil
	}

	f := make([]float64, len(phi))
	scale := fs / (2 * math.Pi)

	for i := 1; i < len(phi); i++ {
		f[i] = (phi[i] - phi[i-1]) * scale
	}

	return f
}

// Envelope returns |z| per sample.
func Envelope(z []complex128) []float64 {
	env := make([]float64, len(z))
	for i, v := range z {
		env[i] = cmplx.Abs(v)
	}

	return env
}
