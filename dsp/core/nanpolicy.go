package core

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// NaNPolicy selects what a checked boundary does with NaN and ±Inf.
type NaNPolicy int32

const (
	// NaNPropagate lets non-finite values flow through unchecked.
	NaNPropagate NaNPolicy = iota
	// NaNIgnore replaces non-finite values with 0.
	NaNIgnore
	// NaNError fails with ErrNanInf on the first non-finite value.
	NaNError
	// NaNClamp maps +Inf to MaxFloat64, -Inf to -MaxFloat64 and NaN to 0.
	NaNClamp
)

var defaultNaNPolicy atomic.Int32

// SetDefaultNaNPolicy sets the process-wide policy picked up by
// constructors that were not given an explicit one.
func SetDefaultNaNPolicy(p NaNPolicy) {
	defaultNaNPolicy.Store(int32(p))
}

// DefaultNaNPolicy returns the process-wide policy.
func DefaultNaNPolicy() NaNPolicy {
	return NaNPolicy(defaultNaNPolicy.Load())
}

func (p NaNPolicy) String() string {
	switch p {
	case NaNPropagate:
		return "propagate"
	case NaNIgnore:
		return "ignore"
	case NaNError:
		return "error"
	case NaNClamp:
		return "clamp"
	default:
		return fmt.Sprintf("NaNPolicy(%d)", int32(p))
	}
}

// Valid reports whether p is one of the defined policies.
func (p NaNPolicy) Valid() bool {
	return p >= NaNPropagate && p <= NaNClamp
}

// ParseNaNPolicy parses the String form of a policy.
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "propagate":
		return NaNPropagate, nil
	case "ignore", "zero":
		return NaNIgnore, nil
	case "error":
		return NaNError, nil
	case "clamp":
		return NaNClamp, nil
	default:
		return NaNPropagate, fmt.Errorf("core: unknown nan policy %q: %w", s, ErrOutOfRange)
	}
}

// Apply enforces p on buf in place. Under NaNError buf is left untouched
// and the index of the first offending sample is reported.
func (p NaNPolicy) Apply(buf []float64) error {
	switch p {
	case NaNPropagate:
		return nil
	case NaNIgnore:
		for i, v := range buf {
			if !IsFinite(v) {
				buf[i] = 0
			}
		}
	case NaNError:
		for i, v := range buf {
			if !IsFinite(v) {
				return fmt.Errorf("core: non-finite value %v at index %d: %w", v, i, ErrNanInf)
			}
		}
	case NaNClamp:
		for i, v := range buf {
			switch {
			case math.IsNaN(v):
				buf[i] = 0
			case math.IsInf(v, 1):
				buf[i] = math.MaxFloat64
			case math.IsInf(v, -1):
				buf[i] = -math.MaxFloat64
			}
		}
	default:
		return fmt.Errorf("core: nan policy %d: %w", int32(p), ErrOutOfRange)
	}

	return nil
}
