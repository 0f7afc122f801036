package stft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/window"
	"github.com/cwbudde/dspcore/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		size, hop int
	}{
		{"zero size", 0, 1},
		{"zero hop", 16, 0},
		{"hop above size", 16, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.size, tt.hop, window.TypeHann); !errors.Is(err, core.ErrInvalidSize) {
				t.Fatalf("New error = %v, want ErrInvalidSize", err)
			}
		})
	}

	if _, err := New(16, 4, window.Type(99)); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatal("unknown window type accepted")
	}
}

func TestNumFrames(t *testing.T) {
	s, err := New(256, 64, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct{ n, want int }{
		{0, 0},
		{100, 1},
		{256, 1},
		{257, 2},
		{320, 2},
		{321, 3},
	}

	for _, tt := range tests {
		if got := s.NumFrames(tt.n); got != tt.want {
			t.Fatalf("NumFrames(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestCOLAReconstruction(t *testing.T) {
	const (
		size = 512
		hop  = size / 4
		n    = 8192
	)

	s, err := New(size, hop, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicNoise(11, 1, n)

	frames, err := s.Analyze(x)
	if err != nil {
		t.Fatal(err)
	}

	y, err := s.Synthesize(frames, n)
	if err != nil {
		t.Fatal(err)
	}

	if rms := testutil.RMSError(y[size:n-size], x[size:n-size]); rms >= 1e-5 {
		t.Fatalf("reconstruction RMS error = %g, want < 1e-5", rms)
	}
}

func TestReconstructAccumulates(t *testing.T) {
	s, err := New(8, 4, window.TypeRectangular)
	if err != nil {
		t.Fatal(err)
	}

	src := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	spec := make([]complex128, 8)

	if err := s.Process(spec, src); err != nil {
		t.Fatal(err)
	}

	out := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	norm := make([]float64, 8)

	if err := s.Reconstruct(spec, out, norm); err != nil {
		t.Fatal(err)
	}

	for i := range out {
		if math.Abs(out[i]-(src[i]+1)) > 1e-12 || norm[i] != 1 {
			t.Fatalf("index %d: out=%v norm=%v", i, out[i], norm[i])
		}
	}
}

func TestSpectrogramOfSine(t *testing.T) {
	const size = 64

	s, err := New(size, size/2, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicSine(8, size, 1, 200)

	mag, frames, err := s.Spectrogram(x)
	if err != nil {
		t.Fatal(err)
	}

	if frames != s.NumFrames(200) || len(mag) != frames*size {
		t.Fatalf("frames=%d len=%d", frames, len(mag))
	}

	// Every full frame peaks at bin 8.
	for f := range frames - 1 {
		row := mag[f*size : f*size+size/2]

		best := 0
		for k, v := range row {
			if v > row[best] {
				best = k
			}
		}

		if best != 8 {
			t.Fatalf("frame %d peaks at bin %d, want 8", f, best)
		}
	}
}

func TestProcessMatchesWindowedDFT(t *testing.T) {
	s, err := New(12, 3, window.TypeHamming)
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicNoise(5, 1, 12)
	w := s.Window()

	ref := make([]complex128, 12)
	for i := range x {
		ref[i] = complex(x[i]*w[i], 0)
	}

	got := make([]complex128, 12)
	if err := s.Process(got, x); err != nil {
		t.Fatal(err)
	}

	want := testutil.NaiveDFT(ref)
	for k := range got {
		if cmplx.Abs(got[k]-want[k]) > 1e-10 {
			t.Fatalf("bin %d = %v, want %v", k, got[k], want[k])
		}
	}
}

func TestBufferValidation(t *testing.T) {
	s, err := New(8, 2, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Process(make([]complex128, 4), make([]float64, 8)); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("Process error = %v", err)
	}

	if err := s.Reconstruct(nil, make([]float64, 8), nil); !errors.Is(err, core.ErrNullPointer) {
		t.Fatalf("Reconstruct error = %v", err)
	}

	if _, _, err := s.Spectrogram([]float64{}); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("Spectrogram error = %v", err)
	}
}
