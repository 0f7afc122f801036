package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

const testRate = 48000.0

var responseCases = []struct {
	name string
	c    Coefficients
}{
	{"passthrough", passthrough()},
	{"two-tap average", simpleLowpass()},
	{"resonant", fromRoots(0.3, complex(0.8, 0.4), complex(-1, 0))},
	{"allpass", Coefficients{B0: 0.3, B1: -0.5, B2: 1, A1: -0.5, A2: 0.3}},
	{"first order", Coefficients{B0: 0.2, B1: 0.2, A1: -0.6}},
}

var responseFreqs = []float64{0, 60, 1000, 7500, 12000, 23999, testRate / 2}

func TestMagnitudeSquaredAgreesWithResponse(t *testing.T) {
	for _, tc := range responseCases {
		for _, f := range responseFreqs {
			h := tc.c.Response(f, testRate)
			want := real(h)*real(h) + imag(h)*imag(h)

			if got := tc.c.MagnitudeSquared(f, testRate); math.Abs(got-want) > 1e-10*math.Max(1, want) {
				t.Errorf("%s @ %g Hz: |H|² = %.15g, |Response|² = %.15g", tc.name, f, got, want)
			}

			if got := tc.c.Phase(f, testRate); got != cmplx.Phase(h) {
				t.Errorf("%s @ %g Hz: Phase = %v, arg H = %v", tc.name, f, got, cmplx.Phase(h))
			}

			if want < 1e-12 {
				continue
			}

			if got, want := tc.c.MagnitudeDB(f, testRate), 10*math.Log10(want); math.Abs(got-want) > 1e-9 {
				t.Errorf("%s @ %g Hz: MagnitudeDB = %v, want %v", tc.name, f, got, want)
			}
		}
	}
}

func TestResponseAtBandEdges(t *testing.T) {
	for _, tc := range responseCases {
		c := tc.c

		dc := (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
		if got := c.Response(0, testRate); cmplx.Abs(got-complex(dc, 0)) > 1e-12 {
			t.Errorf("%s: H(1) = %v, want %v", tc.name, got, dc)
		}

		ny := (c.B0 - c.B1 + c.B2) / (1 - c.A1 + c.A2)
		if got := c.Response(testRate/2, testRate); cmplx.Abs(got-complex(ny, 0)) > 1e-12 {
			t.Errorf("%s: H(-1) = %v, want %v", tc.name, got, ny)
		}
	}
}

func TestAllpassHasUnitMagnitude(t *testing.T) {
	c := Coefficients{B0: 0.3, B1: -0.5, B2: 1, A1: -0.5, A2: 0.3}

	for f := 0.0; f <= testRate/2; f += 750 {
		if m := cmplx.Abs(c.Response(f, testRate)); math.Abs(m-1) > 1e-12 {
			t.Fatalf("|H(%g)| = %v, want 1", f, m)
		}
	}
}

func TestChainResponseIsGainTimesProduct(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs, WithGain(-2))

	for _, f := range responseFreqs {
		want := -2 * coeffs[0].Response(f, testRate) * coeffs[1].Response(f, testRate)

		got := chain.Response(f, testRate)
		if cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("%g Hz: chain %v, product %v", f, got, want)
		}

		if db := chain.MagnitudeDB(f, testRate); math.Abs(db-20*math.Log10(cmplx.Abs(want))) > 1e-9 {
			t.Errorf("%g Hz: MagnitudeDB = %v", f, db)
		}

		if ph := chain.Phase(f, testRate); math.Abs(ph-cmplx.Phase(want)) > 1e-12 {
			t.Errorf("%g Hz: Phase = %v, want %v", f, ph, cmplx.Phase(want))
		}
	}
}

func TestImpulseResponse(t *testing.T) {
	c := Coefficients{B0: 1, A1: -0.5}

	s := NewSection(c)
	s.ProcessSample(3)
	before := s.State()

	// y[n] = 0.5^n for a one-pole recursion.
	h := s.ImpulseResponse(6)
	for n, v := range h {
		if want := math.Pow(0.5, float64(n)); math.Abs(v-want) > eps {
			t.Errorf("h[%d] = %v, want %v", n, v, want)
		}
	}

	if s.State() != before {
		t.Fatalf("state changed: %v -> %v", before, s.State())
	}

	if s.ImpulseResponse(0) != nil || s.ImpulseResponse(-3) != nil {
		t.Fatal("non-positive lengths should give nil")
	}
}

func TestChainImpulseResponseMatchesProcessing(t *testing.T) {
	coeffs := twoSectionCoeffs()

	chain := NewChain(coeffs, WithGain(0.5))
	chain.ProcessSample(1)
	chain.ProcessSample(-1)
	before := chain.State()

	h := chain.ImpulseResponse(32)

	ref := NewChain(coeffs, WithGain(0.5))
	x := make([]float64, len(h))
	x[0] = 1
	ref.ProcessBlock(x)

	for i := range h {
		if !almostEqual(h[i], x[i], eps) {
			t.Fatalf("h[%d] = %v, want %v", i, h[i], x[i])
		}
	}

	after := chain.State()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("section %d state changed", i)
		}
	}
}
