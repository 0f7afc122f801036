package core

import "math"

// Real is the scalar sample type used throughout the library.
type Real = float64

// Cpx is the complex sample type. Its memory layout is two consecutive
// Real values (re, im).
type Cpx = complex128

const (
	Pi     = math.Pi
	TwoPi  = 2 * math.Pi
	HalfPi = math.Pi / 2
)

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Clamp limits x to the closed interval spanned by lo and hi, which may be
// given in either order. NaN passes through.
func Clamp(x, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

// AmplitudeDB returns 20·log10(a): -Inf for 0 and NaN for negative a.
func AmplitudeDB(a float64) float64 {
	switch {
	case a < 0:
		return math.NaN()
	case a == 0:
		return math.Inf(-1)
	default:
		return 20 * math.Log10(a)
	}
}
