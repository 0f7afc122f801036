package fir

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
	"github.com/cwbudde/dspcore/dsp/frame"
	"github.com/tphakala/simd/c128"
)

// Apply filters x with h from zero initial conditions and returns the
// first len(x) output samples.
func Apply(h, x []float64) ([]float64, error) {
	f, err := New(h)
	if err != nil {
		return nil, err
	}

	if x == nil {
		return nil, fmt.Errorf("fir: input: %w", core.ErrNullPointer)
	}

	out := make([]float64, len(x))
	_ = f.ProcessBlockTo(out, x)

	return out, nil
}

// Convolver computes block linear convolutions with a fixed kernel on a
// power-of-two R2C/C2R pair. It owns its scratch and is not safe for
// concurrent use.
type Convolver struct {
	taps   int
	block  int
	size   int
	kernel []complex128
	spec   []complex128
	pad    []float64
	r2c    *fft.Plan
	c2r    *fft.Plan
}

// NewConvolver prepares a convolver for inputs of up to maxBlock samples.
func NewConvolver(h []float64, maxBlock int, opts ...fft.Option) (*Convolver, error) {
	if h == nil {
		return nil, fmt.Errorf("fir: kernel: %w", core.ErrNullPointer)
	}

	if len(h) == 0 || maxBlock <= 0 {
		return nil, fmt.Errorf("fir: kernel=%d block=%d: %w", len(h), maxBlock, core.ErrInvalidSize)
	}

	size := fft.NextPow2(maxBlock + len(h) - 1)

	r2c, err := fft.NewPlan(size, fft.R2C, fft.Forward, opts...)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}

	c2r, err := fft.NewPlan(size, fft.C2R, fft.Backward, opts...)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}

	c := &Convolver{
		taps:   len(h),
		block:  maxBlock,
		size:   size,
		kernel: make([]complex128, r2c.Bins()),
		spec:   make([]complex128, r2c.Bins()),
		pad:    make([]float64, size),
		r2c:    r2c,
		c2r:    c2r,
	}

	copy(c.pad, h)

	if err := r2c.ExecuteR2C(c.kernel, c.pad); err != nil {
		return nil, fmt.Errorf("fir: kernel spectrum: %w", err)
	}

	return c, nil
}

// Size returns the transform length.
func (c *Convolver) Size() int { return c.size }

// Convolve writes the full linear convolution of src with the kernel into
// dst, which must hold len(src)+N−1 samples.
func (c *Convolver) Convolve(dst, src []float64) error {
	if c == nil || dst == nil || src == nil {
		return fmt.Errorf("fir: convolve: %w", core.ErrNullPointer)
	}

	if len(src) == 0 || len(src) > c.block || len(dst) != len(src)+c.taps-1 {
		return fmt.Errorf("fir: convolve block=%d given src=%d dst=%d: %w",
			c.block, len(src), len(dst), core.ErrInvalidSize)
	}

	return c.run(dst, src)
}

// Apply writes the first len(src) samples of the convolution into dst,
// matching the streaming filter from zero history.
func (c *Convolver) Apply(dst, src []float64) error {
	if c == nil || dst == nil || src == nil {
		return fmt.Errorf("fir: apply: %w", core.ErrNullPointer)
	}

	if len(src) == 0 || len(src) > c.block || len(dst) != len(src) {
		return fmt.Errorf("fir: apply block=%d given src=%d dst=%d: %w",
			c.block, len(src), len(dst), core.ErrInvalidSize)
	}

	return c.run(dst, src)
}

func (c *Convolver) run(dst, src []float64) error {
	copy(c.pad, src)
	clear(c.pad[len(src):])

	if err := c.r2c.ExecuteR2C(c.spec, c.pad); err != nil {
		return fmt.Errorf("fir: %w", err)
	}

	c128.Mul(c.spec, c.spec, c.kernel)

	if err := c.c2r.ExecuteC2R(c.pad, c.spec); err != nil {
		return fmt.Errorf("fir: %w", err)
	}

	copy(dst, c.pad[:len(dst)])

	return nil
}

// ApplyFFT filters x with h through one FFT block. The result matches Apply.
func ApplyFFT(h, x []float64) ([]float64, error) {
	if x == nil {
		return nil, fmt.Errorf("fir: input: %w", core.ErrNullPointer)
	}

	if len(x) == 0 {
		return nil, fmt.Errorf("fir: empty input: %w", core.ErrInvalidSize)
	}

	c, err := NewConvolver(h, len(x))
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	if err := c.Apply(out, x); err != nil {
		return nil, err
	}

	return out, nil
}

// Filtfilt runs h forward and backward over x for a zero-phase result.
// The input is reflection-padded by N−1 samples on both sides.
func Filtfilt(h, x []float64) ([]float64, error) {
	if h == nil || x == nil {
		return nil, fmt.Errorf("fir: filtfilt: %w", core.ErrNullPointer)
	}

	if len(h) == 0 || len(x) == 0 {
		return nil, fmt.Errorf("fir: filtfilt taps=%d n=%d: %w", len(h), len(x), core.ErrInvalidSize)
	}

	n, m := len(x), len(h)-1
	padded := make([]float64, n+2*m)

	for i := range padded {
		padded[i] = x[frame.Reflect(i-m, n)]
	}

	c, err := NewConvolver(h, len(padded))
	if err != nil {
		return nil, err
	}

	pass := make([]float64, len(padded))
	if err := c.Apply(pass, padded); err != nil {
		return nil, err
	}

	core.Reverse(pass)

	if err := c.Apply(padded, pass); err != nil {
		return nil, err
	}

	core.Reverse(padded)

	return append([]float64(nil), padded[m:m+n]...), nil
}
