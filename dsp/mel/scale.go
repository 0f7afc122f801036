package mel

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcore/dsp/core"
)

// Variant selects the Hz/mel mapping.
type Variant int

const (
	// HTK uses mel = 2595·log10(1 + hz/700).
	HTK Variant = iota
	// Slaney is linear below 1 kHz and logarithmic above, as in the
	// Auditory Toolbox.
	Slaney
)

func (v Variant) String() string {
	switch v {
	case HTK:
		return "htk"
	case Slaney:
		return "slaney"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant resolves "htk" or "slaney".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "htk":
		return HTK, nil
	case "slaney":
		return Slaney, nil
	default:
		return 0, fmt.Errorf("mel: variant %q: %w", s, core.ErrOutOfRange)
	}
}

// ToMel converts hz on this variant's scale.
func (v Variant) ToMel(hz float64) float64 {
	if v == Slaney {
		return HzToMelSlaney(hz)
	}

	return HzToMel(hz)
}

// ToHz converts mel back to Hz on this variant's scale.
func (v Variant) ToHz(m float64) float64 {
	if v == Slaney {
		return MelToHzSlaney(m)
	}

	return MelToHz(m)
}

// HzToMel is the HTK mapping. Negative input clamps to 0.
func HzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+max(hz, 0)/700)
}

// MelToHz inverts HzToMel. Negative input clamps to 0.
func MelToHz(m float64) float64 {
	return 700 * (math.Pow(10, max(m, 0)/2595) - 1)
}

const (
	slaneyStep   = 200.0 / 3
	slaneyMinHz  = 1000.0
	slaneyMinMel = slaneyMinHz / slaneyStep
)

var slaneyLogStep = math.Log(6.4) / 27

// HzToMelSlaney is the Slaney mapping. Negative input clamps to 0.
func HzToMelSlaney(hz float64) float64 {
	hz = max(hz, 0)
	if hz < slaneyMinHz {
		return hz / slaneyStep
	}

	return slaneyMinMel + math.Log(hz/slaneyMinHz)/slaneyLogStep
}

// MelToHzSlaney inverts HzToMelSlaney. Negative input clamps to 0.
func MelToHzSlaney(m float64) float64 {
	m = max(m, 0)
	if m < slaneyMinMel {
		return m * slaneyStep
	}

	return slaneyMinHz * math.Exp(slaneyLogStep*(m-slaneyMinMel))
}
