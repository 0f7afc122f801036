package envelope

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
)

// logFloor keeps log|X| finite at spectral zeros.
const logFloor = 1e-12

type transformPair struct {
	fwd *fft.Plan
	inv *fft.Plan
}

func newTransformPair(n int) (*transformPair, error) {
	fwd, err := fft.NewPlan(n, fft.C2C, fft.Forward)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	inv, err := fft.NewPlan(n, fft.C2C, fft.Backward)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	return &transformPair{fwd: fwd, inv: inv}, nil
}

// RealCepstrum returns real(IFFT(log(|FFT(x)| + 1e-12))).
func RealCepstrum(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("envelope: empty input: %w", core.ErrInvalidSize)
	}

	tp, err := newTransformPair(len(x))
	if err != nil {
		return nil, err
	}

	buf := make([]complex128, len(x))
	core.RealToComplex(buf, x)

	if err := tp.fwd.Execute(buf, buf); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	for k, v := range buf {
		buf[k] = complex(math.Log(cmplx.Abs(v)+logFloor), 0)
	}

	if err := tp.inv.Execute(buf, buf); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	out := make([]float64, len(x))
	core.RealParts(out, buf)

	return out, nil
}

// MinimumPhaseSpectrum turns a real cepstrum into the minimum-phase
// spectrum H[k] that shares its magnitude.
func MinimumPhaseSpectrum(c []float64) ([]complex128, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("envelope: empty cepstrum: %w", core.ErrInvalidSize)
	}

	tp, err := newTransformPair(len(c))
	if err != nil {
		return nil, err
	}

	return minimumPhaseSpectrum(tp, c)
}

// MinimumPhase turns a real cepstrum into a minimum-phase impulse
// response of the same length.
func MinimumPhase(c []float64) ([]float64, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("envelope: empty cepstrum: %w", core.ErrInvalidSize)
	}

	tp, err := newTransformPair(len(c))
	if err != nil {
		return nil, err
	}

	h, err := minimumPhaseSpectrum(tp, c)
	if err != nil {
		return nil, err
	}

	if err := tp.inv.Execute(h, h); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	out := make([]float64, len(c))
	core.RealParts(out, h)

	return out, nil
}

func minimumPhaseSpectrum(tp *transformPair, c []float64) ([]complex128, error) {
	n := len(c)
	buf := make([]complex128, n)

	// Causal fold: c[0] as is, positive quefrencies doubled, the Nyquist
	// quefrency and negative time dropped.
	buf[0] = complex(c[0], 0)

	last := (n - 1) / 2
	for k := 1; k <= last; k++ {
		buf[k] = complex(2*c[k], 0)
	}

	if err := tp.fwd.Execute(buf, buf); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	for k, v := range buf {
		buf[k] = cmplx.Exp(v)
	}

	return buf, nil
}
