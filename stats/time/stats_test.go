package time

import (
	"math"
	"testing"

	"github.com/cwbudde/dspcore/internal/testutil"
)

const tolerance = 1e-10

// same treats matching infinities and NaN as equal.
func same(a, b, tol float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	default:
		return math.Abs(a-b) <= tol
	}
}

func TestCalculateKnownSignals(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   Stats
	}{
		{
			name:   "alternating",
			signal: []float64{2, -2, 2, -2},
			want: Stats{
				Length: 4, DC: 0, DC_dB: math.Inf(-1),
				RMS: 2, RMS_dB: 20 * math.Log10(2),
				Max: 2, MaxPos: 0, Min: -2, MinPos: 1,
				Peak: 2, Peak_dB: 20 * math.Log10(2),
				Range: 4, Range_dB: 20 * math.Log10(4),
				CrestFactor: 1, CrestFactor_dB: 0,
				Energy: 16, Power: 4,
				ZeroCrossings: 3, ZeroCrossingRate: 1,
				Variance: 4, Skewness: 0, Kurtosis: -2,
			},
		},
		{
			name:   "ramp",
			signal: []float64{0, 1, 2, 3, 4},
			want: Stats{
				Length: 5, DC: 2, DC_dB: 20 * math.Log10(2),
				RMS: math.Sqrt(6), RMS_dB: 10 * math.Log10(6),
				Max: 4, MaxPos: 4, Min: 0, MinPos: 0,
				Peak: 4, Peak_dB: 20 * math.Log10(4),
				Range: 4, Range_dB: 20 * math.Log10(4),
				CrestFactor: 4 / math.Sqrt(6), CrestFactor_dB: 20 * math.Log10(4/math.Sqrt(6)),
				Energy: 30, Power: 6,
				Variance: 2, Skewness: 0, Kurtosis: -1.3,
			},
		},
		{
			name:   "negative constant",
			signal: []float64{-3, -3, -3, -3},
			want: Stats{
				Length: 4, DC: -3, DC_dB: 20 * math.Log10(3),
				RMS: 3, RMS_dB: 20 * math.Log10(3),
				Max: -3, Min: -3,
				Peak: 3, Peak_dB: 20 * math.Log10(3),
				Range: 0, Range_dB: math.Inf(-1),
				CrestFactor: 1, CrestFactor_dB: 0,
				Energy: 36, Power: 9,
			},
		},
		{
			name:   "silence",
			signal: make([]float64, 8),
			want: Stats{
				Length: 8, DC_dB: math.Inf(-1), RMS_dB: math.Inf(-1),
				Peak_dB: math.Inf(-1), Range_dB: math.Inf(-1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compareStats(t, Calculate(tt.signal), tt.want)
		})
	}
}

func TestCalculateEmptyAndSingle(t *testing.T) {
	empty := Calculate(nil)
	if empty.Length != 0 || empty.RMS != 0 || empty.ZeroCrossingRate != 0 {
		t.Fatalf("empty stats = %+v", empty)
	}

	for name, v := range map[string]float64{
		"DC_dB": empty.DC_dB, "RMS_dB": empty.RMS_dB, "Peak_dB": empty.Peak_dB,
		"Range_dB": empty.Range_dB, "CrestFactor_dB": empty.CrestFactor_dB,
	} {
		if !math.IsInf(v, -1) {
			t.Errorf("empty %s = %v, want -Inf", name, v)
		}
	}

	one := Calculate([]float64{-0.5})
	if one.Length != 1 || one.MaxPos != 0 || one.MinPos != 0 {
		t.Fatalf("single-sample positions = %+v", one)
	}

	if one.Variance != 0 || one.ZeroCrossingRate != 0 || one.CrestFactor != 1 {
		t.Fatalf("single-sample shape = var %v zcr %v crest %v", one.Variance, one.ZeroCrossingRate, one.CrestFactor)
	}
}

func TestNonFiniteInputs(t *testing.T) {
	withNaN := Calculate([]float64{1, math.NaN(), 2})
	if !math.IsNaN(withNaN.DC) || !math.IsNaN(withNaN.RMS) || !math.IsNaN(withNaN.Variance) {
		t.Fatalf("NaN did not propagate: DC=%v RMS=%v Var=%v", withNaN.DC, withNaN.RMS, withNaN.Variance)
	}

	if got := Sum([]float64{math.Inf(1), 1, 2}); !math.IsInf(got, 1) {
		t.Fatalf("Sum(+Inf, 1, 2) = %v, want +Inf", got)
	}

	if got := Sum([]float64{math.Inf(1), math.Inf(-1)}); !math.IsNaN(got) {
		t.Fatalf("Sum(+Inf, -Inf) = %v, want NaN", got)
	}

	if got := RMS([]float64{3, math.Inf(-1)}); !math.IsInf(got, 1) {
		t.Fatalf("RMS with -Inf = %v, want +Inf", got)
	}

	s := Calculate([]float64{1, math.Inf(1), -1})
	if s.MaxPos != 1 || !math.IsInf(s.Peak, 1) {
		t.Fatalf("MaxPos=%d Peak=%v, want 1 and +Inf", s.MaxPos, s.Peak)
	}
}

func TestZeroCrossingsTinyValues(t *testing.T) {
	tests := []struct {
		signal []float64
		want   int
	}{
		{[]float64{1e-200, -1e-200, 1e-200}, 2},
		{[]float64{math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64}, 1},
		{[]float64{1e-300, 0, -1e-300}, 0},
	}

	for _, tt := range tests {
		if got := ZeroCrossings(tt.signal); got != tt.want {
			t.Errorf("ZeroCrossings(%v) = %d, want %d", tt.signal, got, tt.want)
		}

		if got := Calculate(tt.signal).ZeroCrossings; got != tt.want {
			t.Errorf("Calculate(%v).ZeroCrossings = %d, want %d", tt.signal, got, tt.want)
		}
	}
}

func TestStreamingIndependentOfBlockSize(t *testing.T) {
	signal := testutil.DeterministicNoise(5, 0.8, 1000)
	want := Calculate(signal)

	for _, block := range []int{1, 7, 64, 999, 1000} {
		s := NewStreamingStats()
		for start := 0; start < len(signal); start += block {
			s.Update(signal[start:min(start+block, len(signal))])
		}

		if s.Len() != len(signal) {
			t.Fatalf("block %d: Len = %d", block, s.Len())
		}

		compareStats(t, s.Result(), want)
	}
}

func TestStreamingReset(t *testing.T) {
	s := NewStreamingStats()
	s.Update([]float64{9, -9, 9})
	s.Reset()

	if s.Len() != 0 {
		t.Fatalf("Len after Reset = %d", s.Len())
	}

	s.Update([]float64{1, 2})
	compareStats(t, s.Result(), Calculate([]float64{1, 2}))
}

func TestHelpersAgreeWithCalculate(t *testing.T) {
	signal := testutil.DeterministicNoise(11, 1.5, 777)
	s := Calculate(signal)

	mean, variance, skew, kurt := Moments(signal)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"DC", DC(signal), s.DC},
		{"Mean", mean, s.DC},
		{"RMS", RMS(signal), s.RMS},
		{"Peak", Peak(signal), s.Peak},
		{"CrestFactor", CrestFactor(signal), s.CrestFactor},
		{"Variance", Variance(signal), s.Variance},
		{"Moments variance", variance, s.Variance},
		{"Skewness", Skewness(signal), skew},
		{"Kurtosis", Kurtosis(signal), kurt},
		{"Skewness vs Calculate", skew, s.Skewness},
		{"ZeroCrossingRate", ZeroCrossingRate(signal), s.ZeroCrossingRate},
	}

	for _, c := range checks {
		checkFloat(t, c.name, c.got, c.want)
	}

	if ZeroCrossings(signal) != s.ZeroCrossings {
		t.Errorf("ZeroCrossings = %d, Calculate %d", ZeroCrossings(signal), s.ZeroCrossings)
	}

	if ArgMax(signal) != s.MaxPos || ArgMin(signal) != s.MinPos {
		t.Errorf("ArgMax/ArgMin = %d/%d, Calculate %d/%d", ArgMax(signal), ArgMin(signal), s.MaxPos, s.MinPos)
	}
}

// compareStats checks every field of got against want.
func compareStats(t *testing.T, got, want Stats) {
	t.Helper()

	ints := []struct {
		name      string
		got, want int
	}{
		{"Length", got.Length, want.Length},
		{"MaxPos", got.MaxPos, want.MaxPos},
		{"MinPos", got.MinPos, want.MinPos},
		{"ZeroCrossings", got.ZeroCrossings, want.ZeroCrossings},
	}

	for _, c := range ints {
		if c.got != c.want {
			t.Errorf("%s: got %d, want %d", c.name, c.got, c.want)
		}
	}

	floats := []struct {
		name      string
		got, want float64
	}{
		{"DC", got.DC, want.DC},
		{"DC_dB", got.DC_dB, want.DC_dB},
		{"RMS", got.RMS, want.RMS},
		{"RMS_dB", got.RMS_dB, want.RMS_dB},
		{"Max", got.Max, want.Max},
		{"Min", got.Min, want.Min},
		{"Peak", got.Peak, want.Peak},
		{"Peak_dB", got.Peak_dB, want.Peak_dB},
		{"Range", got.Range, want.Range},
		{"Range_dB", got.Range_dB, want.Range_dB},
		{"CrestFactor", got.CrestFactor, want.CrestFactor},
		{"CrestFactor_dB", got.CrestFactor_dB, want.CrestFactor_dB},
		{"Energy", got.Energy, want.Energy},
		{"Power", got.Power, want.Power},
		{"ZeroCrossingRate", got.ZeroCrossingRate, want.ZeroCrossingRate},
		{"Variance", got.Variance, want.Variance},
		{"Skewness", got.Skewness, want.Skewness},
		{"Kurtosis", got.Kurtosis, want.Kurtosis},
	}

	for _, c := range floats {
		checkFloat(t, c.name, c.got, c.want)
	}
}

func checkFloat(t *testing.T, name string, got, want float64) {
	t.Helper()

	if !same(got, want, tolerance) {
		t.Errorf("%s: got %.17g, want %.17g", name, got, want)
	}
}
