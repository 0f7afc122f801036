package dct

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcore/dsp/core"
)

// Type selects the DCT variant.
type Type int

const (
	TypeII Type = iota + 2
	TypeIII
	TypeIV
)

func (t Type) String() string {
	switch t {
	case TypeII:
		return "DCT-II"
	case TypeIII:
		return "DCT-III"
	case TypeIV:
		return "DCT-IV"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Option configures a Plan.
type Option func(*config)

type config struct {
	policy core.NaNPolicy
}

// WithNaNPolicy sets the non-finite handling applied to input and output.
// Without it the process-wide default at construction time is used.
func WithNaNPolicy(p core.NaNPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// Plan holds the cosine table and scratch for one length and type.
type Plan struct {
	n      int
	typ    Type
	policy core.NaNPolicy
	// cos8[m] = cos(2πm/(8N)); every kernel angle is a multiple of π/(4N).
	cos8 []float64
	in   []float64
	out  []float64
}

// NewPlan builds a plan for length n.
func NewPlan(n int, typ Type, opts ...Option) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("dct: length %d: %w", n, core.ErrInvalidSize)
	}

	if typ < TypeII || typ > TypeIV {
		return nil, fmt.Errorf("dct: type %d: %w", int(typ), core.ErrOutOfRange)
	}

	cfg := config{policy: core.DefaultNaNPolicy()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.policy.Valid() {
		return nil, fmt.Errorf("dct: %v: %w", cfg.policy, core.ErrOutOfRange)
	}

	p := &Plan{
		n:      n,
		typ:    typ,
		policy: cfg.policy,
		cos8:   make([]float64, 8*n),
		in:     make([]float64, n),
		out:    make([]float64, n),
	}

	for m := range p.cos8 {
		p.cos8[m] = math.Cos(2 * math.Pi * float64(m) / float64(8*n))
	}

	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Type returns the DCT variant.
func (p *Plan) Type() Type { return p.typ }

// Forward writes the forward transform of src into dst. dst and src must
// have length N and may alias.
func (p *Plan) Forward(dst, src []float64) error {
	return p.run(dst, src, false)
}

// Inverse writes the inverse transform of src into dst.
func (p *Plan) Inverse(dst, src []float64) error {
	return p.run(dst, src, true)
}

func (p *Plan) run(dst, src []float64, inverse bool) error {
	if p == nil || dst == nil || src == nil {
		return fmt.Errorf("dct: %w", core.ErrNullPointer)
	}

	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("dct: plan length %d given dst=%d src=%d: %w", p.n, len(dst), len(src), core.ErrInvalidSize)
	}

	copy(p.in, src)

	if err := p.policy.Apply(p.in); err != nil {
		return fmt.Errorf("dct: input: %w", err)
	}

	switch {
	case p.typ == TypeII && !inverse, p.typ == TypeIII && inverse:
		p.dct2(p.out)
	case p.typ == TypeIV:
		p.dct4(p.out)
	default:
		p.dct3(p.out)
	}

	if err := p.scale(p.out, inverse); err != nil {
		return err
	}

	copy(dst, p.out)

	return nil
}

func (p *Plan) scale(dst []float64, inverse bool) error {
	n := float64(p.n)

	var s float64

	switch {
	case !inverse && p.typ == TypeIII:
		s = 2
	case inverse && p.typ == TypeIII:
		s = 1 / n
	case inverse:
		s = 2 / n
	default:
		s = 1
	}

	if s != 1 {
		for i := range dst {
			dst[i] *= s
		}
	}

	if err := p.policy.Apply(dst); err != nil {
		return fmt.Errorf("dct: output: %w", err)
	}

	return nil
}

// dct2 computes Σ in[n]·cos(π(2n+1)k/(2N)).
func (p *Plan) dct2(dst []float64) {
	n := p.n
	mod := 8 * n

	for k := range n {
		sum := 0.0
		for j, v := range p.in {
			sum += v * p.cos8[(2*(2*j+1)*k)%mod]
		}

		dst[k] = sum
	}
}

// dct3 computes ½in[0] + Σ_{n≥1} in[n]·cos(πn(2k+1)/(2N)).
func (p *Plan) dct3(dst []float64) {
	n := p.n
	mod := 8 * n

	for k := range n {
		sum := 0.5 * p.in[0]
		for j := 1; j < n; j++ {
			sum += p.in[j] * p.cos8[(2*j*(2*k+1))%mod]
		}

		dst[k] = sum
	}
}

// dct4 computes Σ in[n]·cos(π(2n+1)(2k+1)/(4N)).
func (p *Plan) dct4(dst []float64) {
	n := p.n
	mod := 8 * n

	for k := range n {
		sum := 0.0
		for j, v := range p.in {
			sum += v * p.cos8[((2*j+1)*(2*k+1))%mod]
		}

		dst[k] = sum
	}
}

// Transform is a one-shot forward transform.
func Transform(x []float64, typ Type, opts ...Option) ([]float64, error) {
	p, err := NewPlan(len(x), typ, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	if err := p.Forward(out, x); err != nil {
		return nil, err
	}

	return out, nil
}
