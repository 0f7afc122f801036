package biquad

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
)

// Chain runs sections in series, each feeding the next. An input gain is
// applied ahead of the first section.
type Chain struct {
	sections []Section
	gain     float64
	policy   core.NaNPolicy

	// ProcessBlockTo works in scratch and rolls back to saved on failure.
	scratch []float64
	saved   [][2]float64
}

type chainConfig struct {
	gain   float64
	policy core.NaNPolicy
}

// ChainOption configures NewChain.
type ChainOption func(*chainConfig)

// WithGain scales the input before the first section. Default 1.
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// WithNaNPolicy sets the policy ProcessBlockTo enforces on its output.
// Without it the process-wide default at construction time is used.
func WithNaNPolicy(p core.NaNPolicy) ChainOption {
	return func(cfg *chainConfig) {
		if p.Valid() {
			cfg.policy = p
		}
	}
}

// NewChain builds a cascade with one zero-state Section per coefficient set.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1, policy: core.DefaultNaNPolicy()}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return &Chain{
		sections: sectionsFor(coeffs),
		gain:     cfg.gain,
		policy:   cfg.policy,
	}
}

func sectionsFor(coeffs []Coefficients) []Section {
	s := make([]Section, len(coeffs))
	for i, c := range coeffs {
		s[i].Coefficients = c
	}

	return s
}

// ProcessSample filters one sample through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place, section by section. The NaN policy
// is not applied.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// ProcessBlockTo filters src into dst and enforces the chain's NaN policy
// on the result. dst and src must have equal length and may alias. When
// the policy rejects the block, dst and the delay lines keep their prior
// contents.
func (c *Chain) ProcessBlockTo(dst, src []float64) error {
	if c == nil || dst == nil || src == nil {
		return fmt.Errorf("biquad: chain: %w", core.ErrNullPointer)
	}

	if len(dst) != len(src) {
		return fmt.Errorf("biquad: dst=%d src=%d: %w", len(dst), len(src), core.ErrInvalidSize)
	}

	c.saved = c.saved[:0]
	for i := range c.sections {
		c.saved = append(c.saved, c.sections[i].State())
	}

	c.scratch = core.EnsureLen(c.scratch, len(src))
	copy(c.scratch, src)
	c.ProcessBlock(c.scratch)

	if err := c.policy.Apply(c.scratch); err != nil {
		for i := range c.sections {
			c.sections[i].SetState(c.saved[i])
		}

		return fmt.Errorf("biquad: output: %w", err)
	}

	copy(dst, c.scratch)

	return nil
}

// Reset zeroes every section's delay line.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order counts two poles per section.
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the cascade length.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the input gain.
func (c *Chain) Gain() float64 { return c.gain }

// SetGain replaces the input gain.
func (c *Chain) SetGain(g float64) { c.gain = g }

// NaNPolicy returns the policy enforced by ProcessBlockTo.
func (c *Chain) NaNPolicy() core.NaNPolicy { return c.policy }

// UpdateCoefficients swaps in new coefficients and gain. With an unchanged
// section count the delay lines carry over so the output stays
// continuous; otherwise the cascade restarts from zero state.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients, gain float64) {
	c.gain = gain

	if len(coeffs) != len(c.sections) {
		c.sections = sectionsFor(coeffs)
		return
	}

	for i := range c.sections {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Section returns the i-th section, or nil when i is out of range.
func (c *Chain) Section(i int) *Section {
	if i < 0 || i >= len(c.sections) {
		return nil
	}

	return &c.sections[i]
}

// State snapshots the [z1, z2] pair of every section.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores a snapshot taken by State. It fails without touching
// the chain when the snapshot has the wrong number of sections.
func (c *Chain) SetState(states [][2]float64) error {
	if len(states) != len(c.sections) {
		return fmt.Errorf("biquad: %d states for %d sections: %w",
			len(states), len(c.sections), core.ErrInvalidSize)
	}

	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}

	return nil
}
