package biquad

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
)

// Validate reports whether c is finite and its poles lie strictly inside
// the unit circle: |A2| < 1 and |A1| < 1 + A2.
func (c Coefficients) Validate() error {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if !core.IsFinite(v) {
			return fmt.Errorf("biquad: non-finite coefficient in %+v: %w", c, core.ErrOutOfRange)
		}
	}

	if c.A2 <= -1 || c.A2 >= 1 {
		return fmt.Errorf("biquad: |a2|=%g >= 1: %w", c.A2, core.ErrOutOfRange)
	}

	if c.A1 <= -(1+c.A2) || c.A1 >= 1+c.A2 {
		return fmt.Errorf("biquad: |a1|=%g >= 1+a2=%g: %w", c.A1, 1+c.A2, core.ErrOutOfRange)
	}

	return nil
}

// NewStableSection is NewSection behind the stability guard.
func NewStableSection(c Coefficients) (*Section, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return NewSection(c), nil
}

// NewStableChain is NewChain with every section checked by Validate.
func NewStableChain(coeffs []Coefficients, opts ...ChainOption) (*Chain, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("biquad: empty cascade: %w", core.ErrInvalidSize)
	}

	for i, c := range coeffs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
	}

	return NewChain(coeffs, opts...), nil
}

// Normalize divides a full set of coefficients by a0.
func Normalize(b0, b1, b2, a0, a1, a2 float64) (Coefficients, error) {
	if a0 == 0 || !core.IsFinite(a0) {
		return Coefficients{}, fmt.Errorf("biquad: a0=%g: %w", a0, core.ErrOutOfRange)
	}

	inv := 1 / a0

	return Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}, nil
}
