package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/dspcore/dsp/core"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im, buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	_ = MagnitudeTo(out, in)

	return out
}

// MagnitudeTo writes |X[k]| into dst without allocating in steady state.
func MagnitudeTo(dst []float64, in []complex128) error {
	if len(dst) != len(in) {
		return fmt.Errorf("spectrum: magnitude dst=%d in=%d: %w", len(dst), len(in), core.ErrInvalidSize)
	}

	re, im, buf := split(in)
	vecmath.Magnitude(dst, re, im)
	scratchPool.Put(buf)

	return nil
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	_ = PowerTo(out, in)

	return out
}

// PowerTo writes |X[k]|^2 into dst.
func PowerTo(dst []float64, in []complex128) error {
	if len(dst) != len(in) {
		return fmt.Errorf("spectrum: power dst=%d in=%d: %w", len(dst), len(in), core.ErrInvalidSize)
	}

	re, im, buf := split(in)
	vecmath.Power(dst, re, im)
	scratchPool.Put(buf)

	return nil
}

// MagnitudeDB returns 20*log10(|X[k]|), floored at floorDB.
func MagnitudeDB(in []complex128, floorDB float64) []float64 {
	out := Magnitude(in)
	for i, m := range out {
		out[i] = math.Max(core.AmplitudeDB(m), floorDB)
	}

	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}

	return out
}

// WrapPhase maps phi into (-π, π].
func WrapPhase(phi float64) float64 {
	w := math.Mod(phi+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}

	return w - math.Pi
}

// WrapPhaseInPlace wraps every element of phase into (-π, π].
func WrapPhaseInPlace(phase []float64) {
	for i, p := range phase {
		phase[i] = WrapPhase(p)
	}
}

// UnwrapPhase returns a new phase slice with ±2π discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	UnwrapPhaseTo(out, phase)

	return out
}

// UnwrapPhaseTo unwraps phase into dst, which must be at least as long.
// dst and phase may alias.
func UnwrapPhaseTo(dst, phase []float64) {
	if len(phase) == 0 {
		return
	}

	prev := phase[0]
	dst[0] = phase[0]
	offset := 0.0

	for i := 1; i < len(phase); i++ {
		cur := phase[i]
		// Add the wrapped step so jumps of any multiple of 2π collapse.
		d := cur - prev
		offset += WrapPhase(d) - d
		prev = cur
		dst[i] = cur + offset
	}
}

// FFTShift rotates a spectrum so the zero-frequency bin is centered.
func FFTShift[T float64 | complex128](x []T) []T {
	out := make([]T, len(x))
	FFTShiftTo(out, x)

	return out
}

// FFTShiftTo writes the fftshift of x into dst (len(dst) == len(x), no aliasing).
func FFTShiftTo[T float64 | complex128](dst, x []T) {
	n := len(x)
	rotate(dst, x, (n+1)/2)
}

// IFFTShift undoes FFTShift for both odd and even lengths.
func IFFTShift[T float64 | complex128](x []T) []T {
	out := make([]T, len(x))
	IFFTShiftTo(out, x)

	return out
}

// IFFTShiftTo writes the ifftshift of x into dst.
func IFFTShiftTo[T float64 | complex128](dst, x []T) {
	n := len(x)
	rotate(dst, x, n/2)
}

// rotate writes x rotated left by k into dst.
func rotate[T float64 | complex128](dst, x []T, k int) {
	n := len(x)
	if n == 0 {
		return
	}

	copy(dst, x[k:])
	copy(dst[n-k:], x[:k])
}

// GroupDelayFromPhase computes group delay in samples from unwrapped phase
// over uniformly spaced bins of an fftSize-point transform.
func GroupDelayFromPhase(unwrapped []float64, fftSize int) ([]float64, error) {
	if len(unwrapped) < 2 {
		return nil, fmt.Errorf("spectrum: group delay requires at least 2 phase points: %d: %w", len(unwrapped), core.ErrInvalidSize)
	}

	if fftSize <= 0 {
		return nil, fmt.Errorf("spectrum: group delay fftSize must be > 0: %d: %w", fftSize, core.ErrOutOfRange)
	}

	dw := 2 * math.Pi / float64(fftSize)
	out := make([]float64, len(unwrapped))

	for i := range unwrapped {
		var dphi float64

		switch i {
		case 0:
			dphi = unwrapped[1] - unwrapped[0]
		case len(unwrapped) - 1:
			dphi = unwrapped[i] - unwrapped[i-1]
		default:
			dphi = (unwrapped[i+1] - unwrapped[i-1]) / 2
		}

		out[i] = -dphi / dw
	}

	return out, nil
}
