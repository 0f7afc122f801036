package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length           int
	DC               float64 // mean
	DC_dB            float64
	RMS              float64
	RMS_dB           float64
	Max              float64
	MaxPos           int
	Min              float64
	MinPos           int
	Peak             float64 // max(|max|, |min|)
	Peak_dB          float64
	Range            float64 // max - min
	Range_dB         float64
	CrestFactor      float64 // peak / RMS (linear)
	CrestFactor_dB   float64
	Energy           float64 // sum of squares
	Power            float64 // energy / length
	ZeroCrossings    int
	ZeroCrossingRate float64 // crossings / (length - 1)
	Variance         float64 // population
	Skewness         float64
	Kurtosis         float64 // excess
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		DC_dB:          math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		Range_dB:       math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all time-domain statistics in a single pass.
func Calculate(signal []float64) Stats {
	var s StreamingStats

	s.Update(signal)

	return s.Result()
}

// kahan is a compensated running sum.
type kahan struct {
	sum, c float64
}

func (k *kahan) add(x float64) {
	y := x - k.c
	t := k.sum + y

	// Once the sum overflows the compensation is Inf-Inf; drop it so an
	// infinite sum stays infinite.
	if math.IsInf(t, 0) {
		k.sum, k.c = t, 0
		return
	}

	k.c = (t - k.sum) - y
	k.sum = t
}

// Sum returns the Kahan-compensated sum of the signal.
func Sum(signal []float64) float64 {
	var k kahan
	for _, x := range signal {
		k.add(x)
	}

	return k.sum
}

// Mean returns the arithmetic mean, or 0 for an empty signal.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return Sum(signal) / float64(len(signal))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	return Mean(signal)
}

// Variance returns the population variance computed with Welford's
// recurrence.
func Variance(signal []float64) float64 {
	var mean, m2 float64

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	if len(signal) == 0 {
		return 0
	}

	return m2 / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var k kahan
	for _, x := range signal {
		k.add(x * x)
	}

	return math.Sqrt(k.sum / float64(len(signal)))
}

// MinMax returns the smallest and largest sample. Both are 0 for an
// empty signal.
func MinMax(signal []float64) (lo, hi float64) {
	if len(signal) == 0 {
		return 0, 0
	}

	return floats.Min(signal), floats.Max(signal)
}

// ArgMin returns the index of the first minimum, or -1 for an empty signal.
func ArgMin(signal []float64) int {
	if len(signal) == 0 {
		return -1
	}

	return floats.MinIdx(signal)
}

// ArgMax returns the index of the first maximum, or -1 for an empty signal.
func ArgMax(signal []float64) int {
	if len(signal) == 0 {
		return -1
	}

	return floats.MaxIdx(signal)
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	lo, hi := MinMax(signal)

	return math.Max(math.Abs(lo), math.Abs(hi))
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have strictly opposite
// signs; zeros neither start nor end a crossing.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signChange(signal[i-1], signal[i]) {
			count++
		}
	}

	return count
}

// signChange compares signs directly. The product a·b underflows to zero
// for tiny opposite-sign pairs.
func signChange(a, b float64) bool {
	return (a < 0 && b > 0) || (a > 0 && b < 0)
}

// ZeroCrossingRate returns ZeroCrossings divided by the number of
// adjacent pairs, or 0 for fewer than two samples.
func ZeroCrossingRate(signal []float64) float64 {
	if len(signal) < 2 {
		return 0
	}

	return float64(ZeroCrossings(signal)) / float64(len(signal)-1)
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of the signal using Welford's online algorithm for numerical stability.
func Moments(signal []float64) (mean, variance, skewness, kurtosis float64) {
	var m moments
	for _, x := range signal {
		m.add(x)
	}

	return m.result()
}

// Skewness returns the third standardized moment, or 0 for a constant signal.
func Skewness(signal []float64) float64 {
	_, _, s, _ := Moments(signal)

	return s
}

// Kurtosis returns the excess kurtosis, or 0 for a constant signal.
func Kurtosis(signal []float64) float64 {
	_, _, _, k := Moments(signal)

	return k
}

// moments is the one-pass recurrence for the first four central moments.
type moments struct {
	n          int
	mean       float64
	m2, m3, m4 float64
}

func (m *moments) add(x float64) {
	m.n++
	ni := float64(m.n)
	delta := x - m.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(m.n-1)

	// M4 must be updated before M3, and M3 before M2.
	m.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m.m2 - 4*deltaN*m.m3
	m.m3 += term1*deltaN*(float64(m.n-1)-1) - 3*deltaN*m.m2
	m.m2 += term1
	m.mean += deltaN
}

func (m *moments) result() (mean, variance, skewness, kurtosis float64) {
	if m.n == 0 {
		return 0, 0, 0, 0
	}

	nf := float64(m.n)

	variance = m.m2 / nf
	if variance > 0 {
		skewness = (m.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m.m4/nf)/(variance*variance) - 3
	}

	return m.mean, variance, skewness, kurtosis
}

// StreamingStats accumulates time-domain statistics incrementally across
// multiple blocks of samples. Results do not depend on how the stream is
// split and match [Calculate] on the concatenation.
type StreamingStats struct {
	moments       moments
	sumSq         kahan
	maxVal        float64
	maxPos        int
	minVal        float64
	minPos        int
	zeroCrossings int
	lastSample    float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		pos := s.moments.n

		switch {
		case pos == 0:
			s.maxVal, s.maxPos = x, 0
			s.minVal, s.minPos = x, 0
		case x > s.maxVal:
			s.maxVal, s.maxPos = x, pos
		case x < s.minVal:
			s.minVal, s.minPos = x, pos
		}

		if pos > 0 && signChange(s.lastSample, x) {
			s.zeroCrossings++
		}

		s.moments.add(x)
		s.sumSq.add(x * x)
		s.lastSample = x
	}
}

// Len returns the number of samples seen.
func (s *StreamingStats) Len() int { return s.moments.n }

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	n := s.moments.n
	if n == 0 {
		return emptyStats()
	}

	nf := float64(n)
	mean, variance, skewness, kurtosis := s.moments.result()
	energy := s.sumSq.sum
	rms := math.Sqrt(energy / nf)
	peak := math.Max(math.Abs(s.maxVal), math.Abs(s.minVal))
	rangeVal := s.maxVal - s.minVal

	var crest, crestdB float64
	if rms > 0 {
		crest = peak / rms
		crestdB = 20 * math.Log10(crest)
	}

	var zcr float64
	if n > 1 {
		zcr = float64(s.zeroCrossings) / float64(n-1)
	}

	return Stats{
		Length:           n,
		DC:               mean,
		DC_dB:            ampTodB(mean),
		RMS:              rms,
		RMS_dB:           ampTodB(rms),
		Max:              s.maxVal,
		MaxPos:           s.maxPos,
		Min:              s.minVal,
		MinPos:           s.minPos,
		Peak:             peak,
		Peak_dB:          ampTodB(peak),
		Range:            rangeVal,
		Range_dB:         ampTodB(rangeVal),
		CrestFactor:      crest,
		CrestFactor_dB:   crestdB,
		Energy:           energy,
		Power:            energy / nf,
		ZeroCrossings:    s.zeroCrossings,
		ZeroCrossingRate: zcr,
		Variance:         variance,
		Skewness:         skewness,
		Kurtosis:         kurtosis,
	}
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
