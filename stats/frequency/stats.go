package frequency

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcore/dsp/fft"
	"github.com/cwbudde/dspcore/dsp/spectrum"
	"github.com/cwbudde/dspcore/dsp/window"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
//
//nolint:revive
type Stats struct {
	BinCount   int
	DC         float64 // bin 0 magnitude
	DC_dB      float64
	Sum        float64 // sum of magnitudes
	Sum_dB     float64
	Max        float64
	MaxBin     int
	Min        float64
	MinBin     int
	Average    float64
	Average_dB float64
	Range      float64
	Range_dB   float64
	Energy     float64 // sum of squared magnitudes
	Power      float64
	// Spectral shape descriptors
	Centroid  float64 // Hz
	Spread    float64 // Hz, standard deviation around the centroid
	Flatness  float64 // Wiener entropy, 0..1
	Rolloff   float64 // Hz below which 85% of the energy lies
	Bandwidth float64 // Hz, -3 dB width around the peak
}

// RolloffFraction is the energy share used for Stats.Rolloff.
const RolloffFraction = 0.85

// toDB converts a linear magnitude to decibels. Zero and negative values
// map to -Inf.
func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

// binFreq returns the frequency in Hz of bin i of a one-sided spectrum
// with binCount bins, i.e. an FFT of 2·(binCount-1) points.
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Calculate computes all frequency-domain statistics from a one-sided
// linear magnitude spectrum of length FFTSize/2 + 1. Bin i sits at
// i·sampleRate/(2·(len(magnitude)-1)) Hz.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{
			DC_dB:      math.Inf(-1),
			Sum_dB:     math.Inf(-1),
			Average_dB: math.Inf(-1),
			Range_dB:   math.Inf(-1),
		}
	}

	s := Stats{
		BinCount: n,
		DC:       magnitude[0],
		Sum:      f64.Sum(magnitude),
		Energy:   f64.DotProduct(magnitude, magnitude),
		MaxBin:   floats.MaxIdx(magnitude),
		MinBin:   floats.MinIdx(magnitude),
	}

	s.Max = magnitude[s.MaxBin]
	s.Min = magnitude[s.MinBin]
	s.DC_dB = toDB(s.DC)
	s.Sum_dB = toDB(s.Sum)
	s.Average = s.Sum / float64(n)
	s.Average_dB = toDB(s.Average)
	s.Range = s.Max - s.Min
	s.Range_dB = toDB(s.Range)
	s.Power = s.Energy / float64(n)

	// Shape descriptors need a frequency axis, i.e. at least two bins.
	if n < 2 {
		return s
	}

	s.Centroid = centroid(magnitude, sampleRate, s.Sum)
	s.Spread = spread(magnitude, sampleRate, s.Centroid, s.Sum)
	s.Flatness = flatness(magnitude)
	s.Rolloff = rolloff(magnitude, sampleRate, RolloffFraction, s.Energy)
	s.Bandwidth = bandwidth(magnitude, sampleRate)

	return s
}

// CalculateFromComplex takes |X| of a one-sided complex spectrum and
// delegates to [Calculate].
func CalculateFromComplex(spec []complex128, sampleRate float64) Stats {
	return Calculate(spectrum.Magnitude(spec), sampleRate)
}

// FromSignal windows signal with wt, takes its real FFT and returns the
// statistics of the one-sided magnitude spectrum.
func FromSignal(signal []float64, sampleRate float64, wt window.Type, opts ...fft.Option) (Stats, error) {
	w, err := window.New(wt, len(signal))
	if err != nil {
		return Stats{}, fmt.Errorf("frequency: %w", err)
	}

	plan, err := fft.NewPlan(len(signal), fft.R2C, fft.Forward, opts...)
	if err != nil {
		return Stats{}, fmt.Errorf("frequency: %w", err)
	}

	frame := make([]float64, len(signal))
	if err := window.ApplyCoefficientsTo(frame, signal, w); err != nil {
		return Stats{}, fmt.Errorf("frequency: %w", err)
	}

	spec := make([]complex128, plan.Bins())
	if err := plan.ExecuteR2C(spec, frame); err != nil {
		return Stats{}, fmt.Errorf("frequency: %w", err)
	}

	return CalculateFromComplex(spec, sampleRate), nil
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	return centroid(magnitude, sampleRate, f64.Sum(magnitude))
}

func centroid(magnitude []float64, sampleRate, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}

	// Σ f_i·|X_i| = (fs/(2(n-1)))·Σ i·|X_i|.
	var weighted float64
	for i, v := range magnitude {
		weighted += float64(i) * v
	}

	return binFreq(1, sampleRate, n) * weighted / sumMag
}

func spread(magnitude []float64, sampleRate, cent, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}

	var weightedSq float64
	for i, v := range magnitude {
		diff := binFreq(i, sampleRate, n) - cent
		weightedSq += diff * diff * v
	}

	return math.Sqrt(weightedSq / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in 0..1:
// the geometric over the arithmetic mean of bins 1..N-1. DC is excluded.
// Any zero bin makes the flatness 0.
func Flatness(magnitude []float64) float64 {
	return flatness(magnitude)
}

func flatness(magnitude []float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	bins := magnitude[1:]

	meanLin := f64.Sum(bins) / float64(len(bins))
	if meanLin == 0 {
		return 0
	}

	var sumLog float64

	for _, v := range bins {
		if v <= 0 {
			return 0
		}

		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(len(bins))) / meanLin
}

// Rolloff returns the frequency below which fraction (0..1) of the
// spectral energy lies. Energy is the sum of squared magnitudes.
func Rolloff(magnitude []float64, sampleRate, fraction float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	return rolloff(magnitude, sampleRate, fraction, f64.DotProduct(magnitude, magnitude))
}

func rolloff(magnitude []float64, sampleRate, fraction, totalEnergy float64) float64 {
	n := len(magnitude)
	if n < 2 || totalEnergy == 0 {
		return 0
	}

	threshold := fraction * totalEnergy

	var cum float64

	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}

	return binFreq(n-1, sampleRate, n)
}

// Bandwidth returns the -3 dB width around the spectral peak in Hz, with
// linear interpolation between the bins that straddle peak/√2.
func Bandwidth(magnitude []float64, sampleRate float64) float64 {
	return bandwidth(magnitude, sampleRate)
}

func bandwidth(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peakBin := floats.MaxIdx(magnitude)

	peakVal := magnitude[peakBin]
	if peakVal <= 0 {
		return 0
	}

	threshold := peakVal / math.Sqrt2

	lower := binFreq(0, sampleRate, n)

	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = crossing(i-1, magnitude, threshold, sampleRate)
			break
		}
	}

	upper := binFreq(n-1, sampleRate, n)

	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = crossing(i, magnitude, threshold, sampleRate)
			break
		}
	}

	return max(upper-lower, 0)
}

// crossing interpolates where magnitude crosses threshold between bins
// i and i+1.
func crossing(i int, magnitude []float64, threshold, sampleRate float64) float64 {
	n := len(magnitude)
	fLow := binFreq(i, sampleRate, n)
	fHigh := binFreq(i+1, sampleRate, n)

	denom := magnitude[i+1] - magnitude[i]
	if denom == 0 {
		return (fLow + fHigh) / 2
	}

	t := (threshold - magnitude[i]) / denom

	return fLow + t*(fHigh-fLow)
}
