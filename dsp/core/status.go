package core

import "errors"

// Status classifies the outcome of a fallible operation.
type Status int

const (
	StatusOK Status = iota
	// StatusNullPointer: a required plan, state or buffer is absent.
	StatusNullPointer
	// StatusInvalidSize: zero-length or mismatched buffer sizes.
	StatusInvalidSize
	// StatusOutOfRange: a numeric parameter is outside its domain.
	StatusOutOfRange
	// StatusInternal: allocation, backend or linear-solve failure.
	StatusInternal
	// StatusNanInf: a non-finite value was found under NaNError policy.
	StatusNanInf
)

// Sentinel errors for each non-OK status. Operations wrap them with
// context, so test with errors.Is.
var (
	ErrNullPointer error = StatusNullPointer
	ErrInvalidSize error = StatusInvalidSize
	ErrOutOfRange  error = StatusOutOfRange
	ErrInternal    error = StatusInternal
	ErrNanInf      error = StatusNanInf
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNullPointer:
		return "null pointer"
	case StatusInvalidSize:
		return "invalid size"
	case StatusOutOfRange:
		return "out of range"
	case StatusInternal:
		return "internal error"
	case StatusNanInf:
		return "nan or inf"
	default:
		return "unknown status"
	}
}

// Error implements error so each Status can act as its own sentinel.
func (s Status) Error() string {
	return "dsp: " + s.String()
}

// StatusOf maps err onto the status taxonomy. A nil error is StatusOK and
// an error outside the taxonomy is StatusInternal.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}

	var s Status
	if errors.As(err, &s) {
		return s
	}

	return StatusInternal
}
