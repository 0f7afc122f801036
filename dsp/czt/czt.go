package czt

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
	"github.com/tphakala/simd/c128"
)

// Option configures a Plan.
type Option func(*config)

type config struct {
	backend string
}

// WithBackend selects the FFT backend for the power-of-two core.
func WithBackend(name string) Option {
	return func(c *config) {
		c.backend = name
	}
}

// Plan evaluates an N-input, M-output chirp Z-transform.
type Plan struct {
	n, m int
	w, a complex128

	pre    []complex128 // A^{-n}·W^{n²/2}
	post   []complex128 // W^{k²/2}
	kernel []complex128 // FFT of W^{-m²/2}, m = -(N-1)..M-1
	work   []complex128
	prod   []complex128

	fwd *fft.Plan
	inv *fft.Plan
}

// NewPlan precomputes a transform of n inputs onto m points of the spiral
// z_k = a·w^{-k}.
func NewPlan(n, m int, w, a complex128, opts ...Option) (*Plan, error) {
	if n <= 0 || m <= 0 {
		return nil, fmt.Errorf("czt: n=%d m=%d: %w", n, m, core.ErrInvalidSize)
	}

	if w == 0 || a == 0 || cmplx.IsNaN(w) || cmplx.IsNaN(a) || cmplx.IsInf(w) || cmplx.IsInf(a) {
		return nil, fmt.Errorf("czt: w=%v a=%v: %w", w, a, core.ErrOutOfRange)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size := fft.NextPow2(n + m - 1)

	fwd, err := fft.NewPlan(size, fft.C2C, fft.Forward, fft.WithBackend(backendOrDefault(cfg.backend)))
	if err != nil {
		return nil, fmt.Errorf("czt: %w", err)
	}

	inv, err := fft.NewPlan(size, fft.C2C, fft.Backward, fft.WithBackend(backendOrDefault(cfg.backend)))
	if err != nil {
		return nil, fmt.Errorf("czt: %w", err)
	}

	p := &Plan{
		n: n, m: m, w: w, a: a,
		pre:    make([]complex128, n),
		post:   make([]complex128, m),
		kernel: make([]complex128, size),
		work:   make([]complex128, size),
		prod:   make([]complex128, size),
		fwd:    fwd,
		inv:    inv,
	}

	wr, wt := cmplx.Abs(w), cmplx.Phase(w)
	ar, at := cmplx.Abs(a), cmplx.Phase(a)

	for i := range n {
		e := float64(i) * float64(i) / 2
		p.pre[i] = polar(-float64(i)*math.Log(ar)+e*math.Log(wr), -float64(i)*at+reduce(wt, e))
	}

	for k := range m {
		e := float64(k) * float64(k) / 2
		p.post[k] = polar(e*math.Log(wr), reduce(wt, e))
	}

	// h[j] = W^{-(j-(N-1))²/2} for j = 0..N+M-2.
	for j := range n + m - 1 {
		d := float64(j - (n - 1))
		e := -d * d / 2
		p.kernel[j] = polar(e*math.Log(wr), reduce(wt, e))
	}

	if err := p.fwd.Execute(p.kernel, p.kernel); err != nil {
		return nil, fmt.Errorf("czt: kernel: %w", err)
	}

	return p, nil
}

// InputLen returns N.
func (p *Plan) InputLen() int { return p.n }

// OutputLen returns M.
func (p *Plan) OutputLen() int { return p.m }

// Execute writes the M transform points of src (length N) into dst.
func (p *Plan) Execute(dst, src []complex128) error {
	if p == nil || dst == nil || src == nil {
		return fmt.Errorf("czt: %w", core.ErrNullPointer)
	}

	if len(src) != p.n || len(dst) != p.m {
		return fmt.Errorf("czt: plan %d->%d given src=%d dst=%d: %w", p.n, p.m, len(src), len(dst), core.ErrInvalidSize)
	}

	c128.Mul(p.work[:p.n], src, p.pre)
	clear(p.work[p.n:])

	if err := p.fwd.Execute(p.work, p.work); err != nil {
		return fmt.Errorf("czt: %w", err)
	}

	c128.Mul(p.prod, p.work, p.kernel)

	if err := p.inv.Execute(p.work, p.prod); err != nil {
		return fmt.Errorf("czt: %w", err)
	}

	c128.Mul(dst, p.work[p.n-1:p.n-1+p.m], p.post)

	return nil
}

// Transform is a one-shot chirp Z-transform.
func Transform(x []complex128, m int, w, a complex128, opts ...Option) ([]complex128, error) {
	p, err := NewPlan(len(x), m, w, a, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, m)
	if err := p.Execute(out, x); err != nil {
		return nil, err
	}

	return out, nil
}

// ParamsForFreqRange returns (W, A) for m points from fStart in steps of
// (fEnd-fStart)/m at sample rate fs, so that z_k = e^{j2π(fStart+kΔ)/fs}.
func ParamsForFreqRange(fStart, fEnd float64, m int, fs float64) (w, a complex128, err error) {
	if m <= 0 {
		return 0, 0, fmt.Errorf("czt: m=%d: %w", m, core.ErrInvalidSize)
	}

	if fs <= 0 || fEnd <= fStart || !core.IsFinite(fStart) || !core.IsFinite(fEnd) || !core.IsFinite(fs) {
		return 0, 0, fmt.Errorf("czt: range [%g, %g] at fs=%g: %w", fStart, fEnd, fs, core.ErrOutOfRange)
	}

	delta := (fEnd - fStart) / float64(m)
	w = cmplx.Exp(complex(0, -2*math.Pi*delta/fs))
	a = cmplx.Exp(complex(0, 2*math.Pi*fStart/fs))

	return w, a, nil
}

// Frequencies returns the m frequencies evaluated by ParamsForFreqRange.
func Frequencies(fStart, fEnd float64, m int) []float64 {
	if m <= 0 {
		return nil
	}

	delta := (fEnd - fStart) / float64(m)
	out := make([]float64, m)

	for k := range out {
		out[k] = fStart + float64(k)*delta
	}

	return out
}

func backendOrDefault(name string) string {
	if name == "" {
		return fft.DefaultBackend()
	}

	return name
}

// reduce returns theta·e folded into [-π, π) without losing precision for
// large e.
func reduce(theta, e float64) float64 {
	v := math.Mod(theta*e, 2*math.Pi)
	if v >= math.Pi {
		v -= 2 * math.Pi
	} else if v < -math.Pi {
		v += 2 * math.Pi
	}

	return v
}

// polar returns exp(logMag + i·angle).
func polar(logMag, angle float64) complex128 {
	s, c := math.Sincos(angle)
	r := math.Exp(logMag)

	return complex(r*c, r*s)
}
