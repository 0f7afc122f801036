package savgol

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/frame"
	"github.com/tphakala/simd/f64"
)

// Option configures a Filter.
type Option func(*config)

type config struct {
	deriv  int
	delta  float64
	mode   Mode
	policy core.NaNPolicy
}

// WithDeriv selects the derivative order (default 0, smoothing).
func WithDeriv(d int) Option {
	return func(c *config) {
		c.deriv = d
	}
}

// WithDelta sets the sample spacing used to scale derivatives (default 1).
func WithDelta(delta float64) Option {
	return func(c *config) {
		c.delta = delta
	}
}

// WithMode selects the edge mode (default ModeReflect).
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithNaNPolicy sets the non-finite handling applied to input and output.
func WithNaNPolicy(p core.NaNPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// Filter applies a fixed Savitzky–Golay kernel. It keeps padded input and
// output scratch buffers and is not safe for concurrent use.
type Filter struct {
	kernel []float64
	mode   Mode
	policy core.NaNPolicy
	pad    []float64
	out    []float64
}

// New designs the kernel for a window and polynomial order.
func New(window, polyorder int, opts ...Option) (*Filter, error) {
	cfg := config{delta: 1, mode: ModeReflect, policy: core.DefaultNaNPolicy()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.mode < ModeReflect || cfg.mode > ModeWrap {
		return nil, fmt.Errorf("savgol: %v: %w", cfg.mode, core.ErrOutOfRange)
	}

	if !cfg.policy.Valid() {
		return nil, fmt.Errorf("savgol: %v: %w", cfg.policy, core.ErrOutOfRange)
	}

	h, err := Coefficients(window, polyorder, cfg.deriv, cfg.delta)
	if err != nil {
		return nil, err
	}

	return &Filter{kernel: h, mode: cfg.mode, policy: cfg.policy}, nil
}

// Kernel returns a copy of the filter taps, oldest offset first.
func (f *Filter) Kernel() []float64 {
	return append([]float64(nil), f.kernel...)
}

// Apply filters src into dst (same length). The signal must be at least as
// long as the window. dst is written only on success.
func (f *Filter) Apply(dst, src []float64) error {
	if f == nil || dst == nil || src == nil {
		return fmt.Errorf("savgol: apply: %w", core.ErrNullPointer)
	}

	n, m := len(src), len(f.kernel)
	if len(dst) != n || n == 0 {
		return fmt.Errorf("savgol: dst=%d src=%d: %w", len(dst), n, core.ErrInvalidSize)
	}

	if m > n {
		return fmt.Errorf("savgol: window %d longer than signal %d: %w", m, n, core.ErrInvalidSize)
	}

	half := m / 2
	f.pad = core.EnsureLen(f.pad, n+2*half)

	for i := range f.pad {
		f.pad[i] = src[f.index(i-half, n)]
	}

	if err := f.policy.Apply(f.pad); err != nil {
		return fmt.Errorf("savgol: input: %w", err)
	}

	f.out = core.EnsureLen(f.out, n)
	for i := range f.out {
		f.out[i] = f64.DotProduct(f.kernel, f.pad[i:i+m])
	}

	if err := f.policy.Apply(f.out); err != nil {
		return fmt.Errorf("savgol: output: %w", err)
	}

	copy(dst, f.out)

	return nil
}

func (f *Filter) index(j, n int) int {
	if j >= 0 && j < n {
		return j
	}

	switch f.mode {
	case ModeWrap:
		j %= n
		if j < 0 {
			j += n
		}

		return j
	case ModeReflect:
		return frame.Reflect(j, n)
	default:
		return min(max(j, 0), n-1)
	}
}

// Apply is a one-shot smoothing or differentiation of x.
func Apply(x []float64, window, polyorder int, opts ...Option) ([]float64, error) {
	f, err := New(window, polyorder, opts...)
	if err != nil {
		return nil, err
	}

	if x == nil {
		return nil, fmt.Errorf("savgol: input: %w", core.ErrNullPointer)
	}

	out := make([]float64, len(x))
	if err := f.Apply(out, x); err != nil {
		return nil, err
	}

	return out, nil
}
