package biquad

import (
	"math"
	"math/cmplx"
)

// Roots holds the z-plane poles and zeros of one section. A first-order
// section reports its missing root as 0.
type Roots struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles solves 1 + A1·z⁻¹ + A2·z⁻² = 0.
func (c Coefficients) Poles() [2]complex128 {
	return quadRoots(1, c.A1, c.A2)
}

// Zeros solves B0 + B1·z⁻¹ + B2·z⁻² = 0. An all-zero numerator has no
// zeros and reports [0, 0].
func (c Coefficients) Zeros() [2]complex128 {
	return quadRoots(c.B0, c.B1, c.B2)
}

// Roots returns the poles and zeros of c.
func (c Coefficients) Roots() Roots {
	return Roots{Poles: c.Poles(), Zeros: c.Zeros()}
}

// Roots returns the poles and zeros of every section in cascade order.
func (c *Chain) Roots() []Roots {
	out := make([]Roots, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Roots()
	}

	return out
}

// MaxPoleRadius returns the largest pole magnitude in the cascade. The
// chain is stable when the result is below 1.
func (c *Chain) MaxPoleRadius() float64 {
	var r float64

	for i := range c.sections {
		for _, p := range c.sections[i].Poles() {
			r = math.Max(r, cmplx.Abs(p))
		}
	}

	return r
}

// quadRoots returns the roots in z of a·z² + b·z + c, the polynomial
// a + b·z⁻¹ + c·z⁻² multiplied through by z². The larger root comes from
// the sign-matched branch and the smaller from Vieta's product so that
// neither suffers cancellation.
func quadRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	sq := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	if b < 0 {
		sq = -sq
	}

	q := -(complex(b, 0) + sq) / 2
	if q == 0 {
		return [2]complex128{}
	}

	return [2]complex128{q / complex(a, 0), complex(c, 0) / q}
}
