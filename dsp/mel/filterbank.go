package mel

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/tphakala/simd/f64"
)

// Bank is a triangular mel filterbank over the nFFT/2+1 bins of a power
// spectrum. It is immutable after construction.
type Bank struct {
	nFFT    int
	nBins   int
	fs      float64
	variant Variant
	centers []float64
	rows    []row
}

// row stores the non-zero span of one filter.
type row struct {
	lo      int
	weights []float64
}

// Filterbank builds nMels triangles with corner points spaced uniformly
// in mel between fmin and fmax.
func Filterbank(nFFT, nMels int, fs, fmin, fmax float64, variant Variant) (*Bank, error) {
	if nFFT < 2 {
		return nil, fmt.Errorf("mel: nfft %d: %w", nFFT, core.ErrInvalidSize)
	}

	nBins := nFFT/2 + 1
	if nMels <= 0 || nMels >= nBins {
		return nil, fmt.Errorf("mel: %d filters for %d bins: %w", nMels, nBins, core.ErrInvalidSize)
	}

	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("mel: sample rate %g: %w", fs, core.ErrOutOfRange)
	}

	if fmin < 0 || !(fmin < fmax) || fmax > fs/2 {
		return nil, fmt.Errorf("mel: range [%g, %g] at fs %g: %w", fmin, fmax, fs, core.ErrOutOfRange)
	}

	if variant != HTK && variant != Slaney {
		return nil, fmt.Errorf("mel: %v: %w", variant, core.ErrOutOfRange)
	}

	lo, hi := variant.ToMel(fmin), variant.ToMel(fmax)
	points := make([]float64, nMels+2)

	for i := range points {
		points[i] = variant.ToHz(lo + (hi-lo)*float64(i)/float64(nMels+1))
	}

	b := &Bank{
		nFFT:    nFFT,
		nBins:   nBins,
		fs:      fs,
		variant: variant,
		centers: make([]float64, nMels),
		rows:    make([]row, nMels),
	}

	binHz := fs / float64(nFFT)
	full := make([]float64, nBins)

	for m := range nMels {
		left, center, right := points[m], points[m+1], points[m+2]
		b.centers[m] = center

		clear(full)

		var sum float64

		for k := range nBins {
			f := float64(k) * binHz

			var w float64

			switch {
			case f >= left && f <= center && center > left:
				w = (f - left) / (center - left)
			case f > center && f <= right && right > center:
				w = (right - f) / (right - center)
			}

			full[k] = w
			sum += w
		}

		b.rows[m] = compactRow(full, sum)
	}

	return b, nil
}

// compactRow normalizes a filter to unit sum and keeps its non-zero span.
// A filter narrower than one bin has no support and stays empty.
func compactRow(full []float64, sum float64) row {
	if sum <= 0 {
		return row{}
	}

	first, last := -1, -1

	for k, w := range full {
		if w > 0 {
			if first < 0 {
				first = k
			}

			last = k
		}
	}

	weights := make([]float64, last-first+1)
	f64.Scale(weights, full[first:last+1], 1/sum)

	return row{lo: first, weights: weights}
}

// NumMels returns the number of filters.
func (b *Bank) NumMels() int { return len(b.rows) }

// NumBins returns the expected power-spectrum length.
func (b *Bank) NumBins() int { return b.nBins }

// Variant returns the mel scale the bank was built on.
func (b *Bank) Variant() Variant { return b.variant }

// Centers returns a copy of the filter center frequencies in Hz.
func (b *Bank) Centers() []float64 {
	return append([]float64(nil), b.centers...)
}

// Weights returns the dense nMels×nBins filter matrix, row-major.
func (b *Bank) Weights() []float64 {
	out := make([]float64, len(b.rows)*b.nBins)

	for m, r := range b.rows {
		copy(out[m*b.nBins+r.lo:], r.weights)
	}

	return out
}

// Apply writes the filter outputs Σ_k W[m,k]·power[k] into dst.
func (b *Bank) Apply(dst, power []float64) error {
	if b == nil || dst == nil || power == nil {
		return fmt.Errorf("mel: %w", core.ErrNullPointer)
	}

	if len(dst) != len(b.rows) || len(power) != b.nBins {
		return fmt.Errorf("mel: bank %d×%d given dst=%d power=%d: %w",
			len(b.rows), b.nBins, len(dst), len(power), core.ErrInvalidSize)
	}

	for m, r := range b.rows {
		if len(r.weights) == 0 {
			dst[m] = 0
			continue
		}

		dst[m] = f64.DotProduct(r.weights, power[r.lo:r.lo+len(r.weights)])
	}

	return nil
}

// LogMel writes log(Apply(power) + eps) into dst.
func (b *Bank) LogMel(dst, power []float64, eps float64) error {
	if !(eps > 0) {
		return fmt.Errorf("mel: log epsilon %g: %w", eps, core.ErrOutOfRange)
	}

	if err := b.Apply(dst, power); err != nil {
		return err
	}

	for i, v := range dst {
		dst[i] = math.Log(v + eps)
	}

	return nil
}
