package fft

// Transform computes the forward DFT of x with a temporary plan.
func Transform(x []complex128) ([]complex128, error) {
	return oneShot(x, Forward)
}

// InverseTransform computes the scaled inverse DFT of x with a temporary
// plan.
func InverseTransform(x []complex128) ([]complex128, error) {
	return oneShot(x, Backward)
}

// TransformReal returns the N/2+1 bin half spectrum of x.
func TransformReal(x []float64) ([]complex128, error) {
	p, err := NewPlan(len(x), R2C, Forward)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, p.Bins())
	if err := p.ExecuteR2C(out, x); err != nil {
		return nil, err
	}

	return out, nil
}

// InverseTransformReal reconstructs n real samples from a half spectrum.
func InverseTransformReal(spec []complex128, n int) ([]float64, error) {
	p, err := NewPlan(n, C2R, Backward)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	if err := p.ExecuteC2R(out, spec); err != nil {
		return nil, err
	}

	return out, nil
}

func oneShot(x []complex128, dir Direction) ([]complex128, error) {
	p, err := NewPlan(len(x), C2C, dir)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(x))
	if err := p.Execute(out, x); err != nil {
		return nil, err
	}

	return out, nil
}
