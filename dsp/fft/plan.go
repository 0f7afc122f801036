package fft

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
)

// Kind selects the buffer layout of a plan.
type Kind int

const (
	// C2C maps N complex samples to N complex bins.
	C2C Kind = iota
	// R2C maps N real samples to N/2+1 complex bins.
	R2C
	// C2R maps N/2+1 complex bins to N real samples.
	C2R
)

func (k Kind) String() string {
	switch k {
	case C2C:
		return "c2c"
	case R2C:
		return "r2c"
	case C2R:
		return "c2r"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Direction selects the transform sign.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}

	return "forward"
}

// Option configures plan construction.
type Option func(*planConfig)

type planConfig struct {
	backend string
}

// WithBackend selects a registered backend for one plan.
func WithBackend(name string) Option {
	return func(c *planConfig) {
		c.backend = name
	}
}

// Plan is an immutable transform description plus the scratch it needs.
type Plan struct {
	n       int
	kind    Kind
	dir     Direction
	backend string
	engine  Engine
	full    []complex128 // length n, R2C/C2R staging
}

// NewPlan builds a plan for length n. R2C plans must be Forward and C2R
// plans Backward.
func NewPlan(n int, kind Kind, dir Direction, opts ...Option) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fft: length %d: %w", n, core.ErrInvalidSize)
	}

	switch {
	case kind < C2C || kind > C2R:
		return nil, fmt.Errorf("fft: kind %v: %w", kind, core.ErrOutOfRange)
	case dir != Forward && dir != Backward:
		return nil, fmt.Errorf("fft: direction %d: %w", int(dir), core.ErrOutOfRange)
	case kind == R2C && dir != Forward:
		return nil, fmt.Errorf("fft: r2c plan must be forward: %w", core.ErrOutOfRange)
	case kind == C2R && dir != Backward:
		return nil, fmt.Errorf("fft: c2r plan must be backward: %w", core.ErrOutOfRange)
	}

	cfg := planConfig{backend: DefaultBackend()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine, err := NewEngine(cfg.backend, n)
	if err != nil {
		return nil, err
	}

	p := &Plan{n: n, kind: kind, dir: dir, backend: cfg.backend, engine: engine}
	if kind != C2C {
		p.full = make([]complex128, n)
	}

	return p, nil
}

// Len returns the transform length N.
func (p *Plan) Len() int { return p.n }

// Kind returns the plan's buffer layout.
func (p *Plan) Kind() Kind { return p.kind }

// Direction returns the plan's transform direction.
func (p *Plan) Direction() Direction { return p.dir }

// Backend returns the name of the backend executing the plan.
func (p *Plan) Backend() string { return p.backend }

// Bins returns the number of complex bins on the spectral side.
func (p *Plan) Bins() int {
	if p.kind == C2C {
		return p.n
	}

	return p.n/2 + 1
}

// Execute runs a C2C plan. dst and src must both have length N and may
// alias.
func (p *Plan) Execute(dst, src []complex128) error {
	if err := p.check(C2C, dst == nil || src == nil); err != nil {
		return err
	}

	if len(dst) != p.n || len(src) != p.n {
		return p.sizeError(len(dst), len(src))
	}

	return p.run(dst, src)
}

// ExecuteR2C transforms N real samples into N/2+1 bins.
func (p *Plan) ExecuteR2C(dst []complex128, src []float64) error {
	if err := p.check(R2C, dst == nil || src == nil); err != nil {
		return err
	}

	if len(src) != p.n || len(dst) != p.Bins() {
		return p.sizeError(len(dst), len(src))
	}

	core.RealToComplex(p.full, src)

	if err := p.run(p.full, p.full); err != nil {
		return err
	}

	copy(dst, p.full[:p.Bins()])

	return nil
}

// ExecuteC2R rebuilds the Hermitian spectrum from N/2+1 bins and writes
// the real part of its scaled inverse into dst.
func (p *Plan) ExecuteC2R(dst []float64, src []complex128) error {
	if err := p.check(C2R, dst == nil || src == nil); err != nil {
		return err
	}

	if len(dst) != p.n || len(src) != p.Bins() {
		return p.sizeError(len(dst), len(src))
	}

	n := p.n
	copy(p.full, src)

	for k := n/2 + 1; k < n; k++ {
		p.full[k] = conj(src[n-k])
	}

	if err := p.run(p.full, p.full); err != nil {
		return err
	}

	core.RealParts(dst, p.full)

	return nil
}

func (p *Plan) check(kind Kind, missing bool) error {
	if p == nil || missing {
		return fmt.Errorf("fft: execute: %w", core.ErrNullPointer)
	}

	if p.kind != kind {
		return fmt.Errorf("fft: %v buffers on a %v plan: %w", kind, p.kind, core.ErrInvalidSize)
	}

	return nil
}

func (p *Plan) sizeError(dst, src int) error {
	return fmt.Errorf("fft: %v plan of length %d given dst=%d src=%d: %w",
		p.kind, p.n, dst, src, core.ErrInvalidSize)
}

func (p *Plan) run(dst, src []complex128) error {
	var err error
	if p.dir == Forward {
		err = p.engine.Forward(dst, src)
	} else {
		err = p.engine.Inverse(dst, src)
	}

	if err != nil {
		return fmt.Errorf("fft: %s backend: %w: %w", p.backend, core.ErrInternal, err)
	}

	return nil
}
