package savgol

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/dspcore/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// Mode selects how samples beyond the signal edges are synthesised.
type Mode int

const (
	// ModeReflect mirrors about the edge samples without repeating them.
	ModeReflect Mode = iota
	// ModeConstant repeats the edge sample. It is the same as ModeNearest.
	ModeConstant
	// ModeNearest repeats the edge sample.
	ModeNearest
	// ModeWrap treats the signal as periodic.
	ModeWrap
)

func (m Mode) String() string {
	switch m {
	case ModeReflect:
		return "reflect"
	case ModeConstant:
		return "constant"
	case ModeNearest:
		return "nearest"
	case ModeWrap:
		return "wrap"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reflect", "mirror":
		return ModeReflect, nil
	case "constant":
		return ModeConstant, nil
	case "nearest", "edge":
		return ModeNearest, nil
	case "wrap", "periodic":
		return ModeWrap, nil
	default:
		return 0, fmt.Errorf("savgol: mode %q: %w", s, core.ErrOutOfRange)
	}
}

// Coefficients returns the window-length kernel that evaluates the deriv-th
// derivative of the local polynomial fit of order polyorder at the window
// centre, for samples spaced delta apart.
func Coefficients(window, polyorder, deriv int, delta float64) ([]float64, error) {
	if err := validate(window, polyorder, deriv, delta); err != nil {
		return nil, err
	}

	half := float64(window-1) / 2
	cols := polyorder + 1

	a := mat.NewDense(window, cols, nil)
	for r := range window {
		t := float64(r) - half
		v := 1.0

		for c := range cols {
			a.Set(r, c, v)
			v *= t
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)

	b := mat.NewVecDense(cols, nil)
	b.SetVec(deriv, factorial(deriv))

	var sol mat.VecDense
	if err := sol.SolveVec(&ata, b); err != nil {
		return nil, fmt.Errorf("savgol: normal equations: %w: %w", core.ErrInternal, err)
	}

	scale := 1.0
	if deriv > 0 {
		scale = 1 / math.Pow(delta, float64(deriv))
	}

	h := make([]float64, window)
	for r := range h {
		h[r] = mat.Dot(a.RowView(r), &sol) * scale
	}

	return h, nil
}

func validate(window, polyorder, deriv int, delta float64) error {
	switch {
	case window <= 0 || window%2 == 0:
		return fmt.Errorf("savgol: window %d must be odd and positive: %w", window, core.ErrOutOfRange)
	case polyorder < 0:
		return fmt.Errorf("savgol: polyorder %d: %w", polyorder, core.ErrOutOfRange)
	case window < polyorder+1:
		return fmt.Errorf("savgol: window %d too short for polyorder %d: %w", window, polyorder, core.ErrOutOfRange)
	case deriv < 0 || deriv > polyorder:
		return fmt.Errorf("savgol: deriv %d outside [0, %d]: %w", deriv, polyorder, core.ErrOutOfRange)
	case deriv > 0 && !(delta > 0):
		return fmt.Errorf("savgol: delta %g: %w", delta, core.ErrOutOfRange)
	}

	return nil
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}

	return f
}
