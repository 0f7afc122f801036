package fft

import (
	"math"
)

// bluestein evaluates an arbitrary-length DFT as a circular convolution on
// a power-of-two core of length P >= 2N-1.
type bluestein struct {
	n      int
	core   Engine
	chirp  []complex128 // exp(-iπk²/n)
	kernel []complex128 // FFT_P of the conjugate chirp, wrapped
	work   []complex128
}

func newBluestein(n int, pow2 func(int) (Engine, error)) (*bluestein, error) {
	p := NextPow2(2*n - 1)

	core, err := pow2(p)
	if err != nil {
		return nil, err
	}

	b := &bluestein{
		n:      n,
		core:   core,
		chirp:  make([]complex128, n),
		kernel: make([]complex128, p),
		work:   make([]complex128, p),
	}

	// k² mod 2n keeps the angle argument small for large k.
	mod := uint64(2 * n)
	for k := range n {
		kk := (uint64(k) * uint64(k)) % mod
		s, c := math.Sincos(-math.Pi * float64(kk) / float64(n))
		b.chirp[k] = complex(c, s)
	}

	b.kernel[0] = conj(b.chirp[0])
	for k := 1; k < n; k++ {
		v := conj(b.chirp[k])
		b.kernel[k] = v
		b.kernel[p-k] = v
	}

	if err := core.Forward(b.kernel, b.kernel); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *bluestein) Len() int { return b.n }

func (b *bluestein) Forward(dst, src []complex128) error {
	return b.run(dst, src, false)
}

// Inverse uses IDFT(x) = conj(DFT(conj(x)))/n.
func (b *bluestein) Inverse(dst, src []complex128) error {
	return b.run(dst, src, true)
}

func (b *bluestein) run(dst, src []complex128, inverse bool) error {
	w := b.work

	for k := range b.n {
		x := src[k]
		if inverse {
			x = conj(x)
		}

		w[k] = x * b.chirp[k]
	}

	clear(w[b.n:])

	if err := b.core.Forward(w, w); err != nil {
		return err
	}

	for i := range w {
		w[i] *= b.kernel[i]
	}

	if err := b.core.Inverse(w, w); err != nil {
		return err
	}

	scale := 1.0
	if inverse {
		scale = 1 / float64(b.n)
	}

	for k := range b.n {
		y := w[k] * b.chirp[k]
		if inverse {
			y = complex(real(y)*scale, -imag(y)*scale)
		}

		dst[k] = y
	}

	return nil
}

func conj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
