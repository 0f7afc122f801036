package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	godspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// newNativeEngine uses the in-tree radix-2 core, wrapped in Bluestein for
// other lengths.
func newNativeEngine(n int) (Engine, error) {
	if IsPow2(n) {
		return newRadix2(n)
	}

	return newBluestein(n, func(p int) (Engine, error) { return newRadix2(p) })
}

// algoEngine adapts an algo-fft power-of-two plan.
type algoEngine struct {
	n    int
	plan *algofft.Plan[complex128]
}

// Lengths below algoMinLen run on the in-tree radix-2 core.
const algoMinLen = 8

func newAlgoPow2(n int) (Engine, error) {
	if n < algoMinLen {
		return newRadix2(n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}

	return &algoEngine{n: n, plan: plan}, nil
}

func newAlgoFFTEngine(n int) (Engine, error) {
	if IsPow2(n) {
		return newAlgoPow2(n)
	}

	return newBluestein(n, newAlgoPow2)
}

func (e *algoEngine) Len() int { return e.n }

func (e *algoEngine) Forward(dst, src []complex128) error {
	return e.plan.Forward(dst, src)
}

func (e *algoEngine) Inverse(dst, src []complex128) error {
	return e.plan.Inverse(dst, src)
}

// gonumEngine adapts gonum's unnormalized complex FFT.
type gonumEngine struct {
	n    int
	fft  *fourier.CmplxFFT
	work []complex128
}

func newGonumEngine(n int) (Engine, error) {
	return &gonumEngine{n: n, fft: fourier.NewCmplxFFT(n), work: make([]complex128, n)}, nil
}

func (e *gonumEngine) Len() int { return e.n }

func (e *gonumEngine) Forward(dst, src []complex128) error {
	copy(e.work, src)
	e.fft.Coefficients(dst, e.work)

	return nil
}

func (e *gonumEngine) Inverse(dst, src []complex128) error {
	copy(e.work, src)
	e.fft.Sequence(dst, e.work)

	scale := 1 / float64(e.n)
	for i := range dst {
		dst[i] = complex(real(dst[i])*scale, imag(dst[i])*scale)
	}

	return nil
}

// godspEngine adapts go-dsp's radix-2 path, whose IFFT is already scaled
// by 1/N. Other lengths use the in-tree Bluestein wrapper so the round trip
// stays within 1e-12.
type godspEngine struct {
	n int
}

func godspPow2(n int) (Engine, error) {
	return &godspEngine{n: n}, nil
}

func newGoDSPEngine(n int) (Engine, error) {
	if IsPow2(n) {
		return godspPow2(n)
	}

	return newBluestein(n, godspPow2)
}

func (e *godspEngine) Len() int { return e.n }

func (e *godspEngine) Forward(dst, src []complex128) error {
	return e.store(dst, godspfft.FFT(src))
}

func (e *godspEngine) Inverse(dst, src []complex128) error {
	return e.store(dst, godspfft.IFFT(src))
}

func (e *godspEngine) store(dst, out []complex128) error {
	if len(out) != e.n {
		return fmt.Errorf("go-dsp returned %d bins, want %d", len(out), e.n)
	}

	copy(dst, out)

	return nil
}
