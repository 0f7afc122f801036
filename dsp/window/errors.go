package window

import (
	"errors"
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
)

var (
	errEmptyCoeffs      = fmt.Errorf("window: coefficients must not be empty: %w", core.ErrInvalidSize)
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
	errMismatchedLength = fmt.Errorf("window: samples and coefficients must have same length: %w", core.ErrInvalidSize)
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d: %w", size, core.ErrInvalidSize)
	}

	return nil
}

func validateKaiser(size int, beta float64) error {
	if err := validateLength(size); err != nil {
		return err
	}

	if beta < 0 || !core.IsFinite(beta) {
		return fmt.Errorf("window: kaiser beta must be >= 0: %f: %w", beta, core.ErrOutOfRange)
	}

	return nil
}

func validateTukey(size int, alpha float64) error {
	if err := validateLength(size); err != nil {
		return err
	}

	if alpha < 0 || alpha > 1 || !core.IsFinite(alpha) {
		return fmt.Errorf("window: tukey alpha must be in [0,1]: %f: %w", alpha, core.ErrOutOfRange)
	}

	return nil
}

func validatePlanck(size int, eps float64) error {
	if err := validateLength(size); err != nil {
		return err
	}

	if eps < 0 || eps > 0.5 || !core.IsFinite(eps) {
		return fmt.Errorf("window: planck epsilon must be in [0,0.5]: %f: %w", eps, core.ErrOutOfRange)
	}

	return nil
}

func validateGauss(size int, alpha float64) error {
	if err := validateLength(size); err != nil {
		return err
	}

	if alpha <= 0 || !core.IsFinite(alpha) {
		return fmt.Errorf("window: gauss alpha must be > 0: %f: %w", alpha, core.ErrOutOfRange)
	}

	return nil
}
