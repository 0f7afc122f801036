package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewForRatesCommon(t *testing.T) {
	r, err := NewForRates(44100, 48000)
	require.NoError(t, err)

	up, down := r.Ratio()
	if up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestQualityModes_PassbandAndStopband(t *testing.T) {
	tests := []struct {
		name          string
		quality       Quality
		maxPassbandDB float64
		minStopbandDB float64
	}{
		{name: "fast", quality: QualityFast, maxPassbandDB: 0.7, minStopbandDB: 20},
		{name: "balanced", quality: QualityBalanced, maxPassbandDB: 0.35, minStopbandDB: 35},
		{name: "best", quality: QualityBest, maxPassbandDB: 0.2, minStopbandDB: 50},
	}

	for _, tc := range tests {
		inPass := sine(2000, 48000, 32768)
		inStop := sine(17000, 48000, 32768)

		outPass, err := Downsample2x(inPass, WithQuality(tc.quality))
		require.NoError(t, err, tc.name)

		outStop, err := Downsample2x(inStop, WithQuality(tc.quality))
		require.NoError(t, err, tc.name)

		inPassRMS := rms(inPass[4096:])
		outPassRMS := rms(outPass[2048:])

		passbandDB := math.Abs(dbRatio(outPassRMS, inPassRMS))
		if passbandDB > tc.maxPassbandDB {
			t.Fatalf("%s: passband droop %.2f dB > %.2f dB", tc.name, passbandDB, tc.maxPassbandDB)
		}

		inStopRMS := rms(inStop[4096:])
		outStopRMS := rms(outStop[2048:])

		stopAttenDB := -dbRatio(outStopRMS, inStopRMS)
		if stopAttenDB < tc.minStopbandDB {
			t.Fatalf("%s: stopband attenuation %.2f dB < %.2f dB", tc.name, stopAttenDB, tc.minStopbandDB)
		}
	}
}

func TestPhasesArePaddedToSpan(t *testing.T) {
	cfg := defaultConfig()
	cfg.quality = QualityFast
	cfg = cfg.finalized()

	taps, phases, span, err := designPolyphaseFIR(3, 2, cfg)
	require.NoError(t, err)
	require.Len(t, phases, 3)
	require.Equal(t, 16, span)

	for p, phase := range phases {
		require.Len(t, phase, span)
		// Newest sample weight sits last.
		require.InDelta(t, taps[p], phase[span-1], 1e-15)
	}
}

func TestApproximateRatio(t *testing.T) {
	tests := []struct {
		v        float64
		num, den int
	}{
		{48000.0 / 44100.0, 160, 147},
		{2, 2, 1},
		{0.5, 1, 2},
		{math.NaN(), 1, 1},
	}

	for _, tc := range tests {
		num, den := approximateRatio(tc.v, 4096)
		if num != tc.num || den != tc.den {
			t.Fatalf("approximateRatio(%v) = %d/%d, want %d/%d", tc.v, num, den, tc.num, tc.den)
		}
	}
}
