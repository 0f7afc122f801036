package dct

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	for _, typ := range []Type{TypeII, TypeIII, TypeIV} {
		for _, n := range []int{1, 2, 3, 8, 13, 32} {
			p, err := NewPlan(n, typ)
			if err != nil {
				t.Fatalf("%v n=%d: %v", typ, n, err)
			}

			x := testutil.DeterministicNoise(int64(n), 1, n)
			spec := make([]float64, n)
			back := make([]float64, n)

			if err := p.Forward(spec, x); err != nil {
				t.Fatal(err)
			}

			if err := p.Inverse(back, spec); err != nil {
				t.Fatal(err)
			}

			testutil.RequireSliceNearlyEqual(t, back, x, 1e-12)
		}
	}
}

func TestDirectFormulas(t *testing.T) {
	const n = 7

	x := testutil.DeterministicNoise(42, 1, n)

	want2 := make([]float64, n)
	want3 := make([]float64, n)
	want4 := make([]float64, n)

	for k := range n {
		want3[k] = x[0]
		for j := range n {
			fj, fk := float64(j), float64(k)
			want2[k] += x[j] * math.Cos(math.Pi*(fj+0.5)*fk/n)
			want4[k] += x[j] * math.Cos(math.Pi*(fj+0.5)*(fk+0.5)/n)

			if j > 0 {
				want3[k] += 2 * x[j] * math.Cos(math.Pi*fj*(fk+0.5)/n)
			}
		}
	}

	for typ, want := range map[Type][]float64{TypeII: want2, TypeIII: want3, TypeIV: want4} {
		got, err := Transform(x, typ)
		if err != nil {
			t.Fatal(err)
		}

		testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
	}
}

func TestDCTIIOfConstant(t *testing.T) {
	got, err := Transform([]float64{1, 1, 1, 1}, TypeII)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{4, 0, 0, 0}, 1e-12)
}

func TestInPlace(t *testing.T) {
	p, err := NewPlan(5, TypeII)
	if err != nil {
		t.Fatal(err)
	}

	x := []float64{1, 2, 3, 4, 5}
	want, _ := Transform(x, TypeII)

	if err := p.Forward(x, x); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, x, want, 1e-12)
}

func TestNaNPolicy(t *testing.T) {
	in := []float64{1, math.NaN(), 3, math.Inf(1)}

	p, err := NewPlan(4, TypeII, WithNaNPolicy(core.NaNError))
	if err != nil {
		t.Fatal(err)
	}

	dst := []float64{9, 9, 9, 9}
	if err := p.Forward(dst, in); !errors.Is(err, core.ErrNanInf) {
		t.Fatalf("Forward error = %v, want ErrNanInf", err)
	}

	if dst[0] != 9 {
		t.Fatal("dst modified on failure")
	}

	p, err = NewPlan(4, TypeII, WithNaNPolicy(core.NaNIgnore))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Forward(dst, in); err != nil {
		t.Fatal(err)
	}

	want, _ := Transform([]float64{1, 0, 3, 0}, TypeII)
	testutil.RequireSliceNearlyEqual(t, dst, want, 1e-12)

	if !math.IsNaN(in[1]) {
		t.Fatal("input modified by policy")
	}
}

func TestOverflowLeavesDst(t *testing.T) {
	// Finite input whose DC term overflows.
	in := []float64{1e308, 1e308, 1e308, 1e308}

	p, err := NewPlan(4, TypeII, WithNaNPolicy(core.NaNError))
	if err != nil {
		t.Fatal(err)
	}

	dst := []float64{9, 9, 9, 9}
	if err := p.Forward(dst, in); !errors.Is(err, core.ErrNanInf) {
		t.Fatalf("Forward error = %v, want ErrNanInf", err)
	}

	for i, v := range dst {
		if v != 9 {
			t.Fatalf("dst[%d] = %v, modified on failure", i, v)
		}
	}

	// The plan stays usable after a rejected block.
	if err := p.Forward(dst, []float64{1, 1, 1, 1}); err != nil {
		t.Fatal(err)
	}

	if math.Abs(dst[0]-4) > 1e-12 {
		t.Fatalf("dst[0] = %v, want 4", dst[0])
	}
}

func TestDefaultPolicyPickedUpAtConstruction(t *testing.T) {
	defer core.SetDefaultNaNPolicy(core.NaNPropagate)

	core.SetDefaultNaNPolicy(core.NaNError)

	p, err := NewPlan(2, TypeIV)
	if err != nil {
		t.Fatal(err)
	}

	core.SetDefaultNaNPolicy(core.NaNPropagate)

	if err := p.Forward(make([]float64, 2), []float64{math.NaN(), 0}); !errors.Is(err, core.ErrNanInf) {
		t.Fatalf("Forward error = %v, want ErrNanInf", err)
	}
}

func TestValidation(t *testing.T) {
	if _, err := NewPlan(0, TypeII); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("NewPlan(0) error = %v", err)
	}

	if _, err := NewPlan(4, Type(1)); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("NewPlan(type 1) error = %v", err)
	}

	p, _ := NewPlan(4, TypeII)
	if err := p.Forward(make([]float64, 3), make([]float64, 4)); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("mismatch error = %v", err)
	}

	if err := p.Forward(nil, make([]float64, 4)); !errors.Is(err, core.ErrNullPointer) {
		t.Fatalf("nil dst error = %v", err)
	}
}
