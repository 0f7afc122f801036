package frame

import (
	"errors"
	"testing"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/internal/testutil"
)

func TestNumFrames(t *testing.T) {
	tests := []struct {
		name             string
		n, frameLen, hop int
		centered         bool
		want             int
	}{
		{"plain", 1024, 256, 128, false, 7},
		{"centered", 1024, 256, 128, true, 8},
		{"short", 100, 256, 128, false, 0},
		{"exact", 256, 256, 128, false, 1},
		{"centered short", 100, 256, 128, true, 1},
		{"empty", 0, 256, 128, true, 0},
		{"zero hop", 1024, 256, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumFrames(tt.n, tt.frameLen, tt.hop, tt.centered); got != tt.want {
				t.Fatalf("NumFrames = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverlapAddUnprocessed(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out := make([]float64, len(signal))
	buf := make([]float64, 4)

	for i := range NumFrames(len(signal), 4, 2, false) {
		if err := Fetch(buf, signal, 2, i, false, nil); err != nil {
			t.Fatal(err)
		}

		OverlapAdd(out, buf, 2, i)
	}

	testutil.RequireSliceNearlyEqual(t, out, []float64{1, 2, 6, 8, 10, 12, 7, 8}, 0)
}

func TestFetchNonCenteredZeroPads(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5}
	dst := make([]float64, 4)

	if err := Fetch(dst, signal, 3, 1, false, nil); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, dst, []float64{4, 5, 0, 0}, 0)
}

func TestFetchCenteredReflects(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5}
	dst := make([]float64, 6)

	// Frame 0 starts at -3.
	if err := Fetch(dst, signal, 2, 0, true, nil); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, dst, []float64{4, 3, 2, 1, 2, 3}, 0)

	// Frame 2 starts at 1 and runs past the end.
	if err := Fetch(dst, signal, 2, 2, true, nil); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, dst, []float64{2, 3, 4, 5, 4, 3}, 0)
}

func TestReflectDeep(t *testing.T) {
	tests := []struct{ j, n, want int }{
		{-1, 3, 1},
		{-2, 3, 2},
		{-3, 3, 1},
		{-4, 3, 0},
		{3, 3, 1},
		{4, 3, 0},
		{5, 3, 1},
		{9, 3, 1},
		{-7, 1, 0},
	}

	for _, tt := range tests {
		if got := Reflect(tt.j, tt.n); got != tt.want {
			t.Fatalf("Reflect(%d, %d) = %d, want %d", tt.j, tt.n, got, tt.want)
		}
	}
}

func TestFetchWindow(t *testing.T) {
	signal := []float64{1, 1, 1, 1}
	dst := make([]float64, 4)

	if err := Fetch(dst, signal, 4, 0, false, []float64{0, 0.5, 1, 0.5}); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, dst, []float64{0, 0.5, 1, 0.5}, 0)

	err := Fetch(dst, signal, 4, 0, false, []float64{1})
	if !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("short window error = %v", err)
	}
}

func TestOverlapAddClipsDestination(t *testing.T) {
	out := make([]float64, 5)
	OverlapAdd(out, []float64{1, 1, 1, 1}, 3, 1)
	OverlapAdd(out, []float64{1, 1, 1, 1}, 3, 5)

	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 0, 0, 1, 1}, 0)
}

func TestFetchValidation(t *testing.T) {
	if err := Fetch(nil, []float64{1}, 1, 0, false, nil); !errors.Is(err, core.ErrNullPointer) {
		t.Fatalf("nil dst error = %v", err)
	}

	if err := Fetch(make([]float64, 2), []float64{1}, 0, 0, false, nil); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("zero hop error = %v", err)
	}
}
