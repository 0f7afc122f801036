package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) at z = e^{jω}, ω = 2π·freqHz/sampleRate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zi := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)

	num := (complex(c.B2, 0)*zi+complex(c.B1, 0))*zi + complex(c.B0, 0)
	den := (complex(c.A2, 0)*zi+complex(c.A1, 0))*zi + 1

	return num / den
}

// MagnitudeSquared returns |H(e^{jω})|² from the real-valued expansion
//
//	|b0 + b1·e^{-jω} + b2·e^{-2jω}|² = b0²+b1²+b2² + 2(b0b1+b1b2)cos ω + 2b0b2·cos 2ω
//
// and the same form for the denominator.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	c1, c2 := math.Cos(w), math.Cos(2*w)

	num := c.B0*c.B0 + c.B1*c.B1 + c.B2*c.B2 +
		2*(c.B0*c.B1+c.B1*c.B2)*c1 + 2*c.B0*c.B2*c2
	den := 1 + c.A1*c.A1 + c.A2*c.A2 +
		2*(c.A1+c.A1*c.A2)*c1 + 2*c.A2*c2

	return num / den
}

// MagnitudeDB returns 10·log10(|H|²).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(e^{jω}) in (-π, π].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Response is the gain times the product of the section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns 20·log10|H| of the cascade.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Phase returns the wrapped phase of the cascade.
func (c *Chain) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// ImpulseResponse returns the first n output samples for a unit impulse
// from zero state. The section's own state is left as it was.
func (s *Section) ImpulseResponse(n int) []float64 {
	saved := s.State()
	defer s.SetState(saved)

	s.Reset()

	return impulse(n, s.ProcessSample)
}

// ImpulseResponse is the cascade form of [Section.ImpulseResponse].
func (c *Chain) ImpulseResponse(n int) []float64 {
	saved := c.State()
	defer func() { _ = c.SetState(saved) }()

	c.Reset()

	return impulse(n, c.ProcessSample)
}

func impulse(n int, step func(float64) float64) []float64 {
	if n <= 0 {
		return nil
	}

	h := make([]float64, n)
	h[0] = step(1)

	for i := 1; i < n; i++ {
		h[i] = step(0)
	}

	return h
}
