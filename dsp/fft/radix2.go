package fft

import (
	"fmt"
	"math"
	"math/bits"
)

// radix2 is an iterative in-place Cooley–Tukey transform for power-of-two
// lengths.
type radix2 struct {
	n       int
	twiddle []complex128 // exp(-2πik/n), k < n/2
	rev     []int
}

func newRadix2(n int) (*radix2, error) {
	if !IsPow2(n) {
		return nil, fmt.Errorf("radix-2 length %d is not a power of two", n)
	}

	r := &radix2{n: n, twiddle: make([]complex128, n/2), rev: make([]int, n)}

	for k := range r.twiddle {
		s, c := math.Sincos(-2 * math.Pi * float64(k) / float64(n))
		r.twiddle[k] = complex(c, s)
	}

	shift := bits.UintSize - bits.Len(uint(n-1))
	for i := range r.rev {
		if n == 1 {
			break
		}

		r.rev[i] = int(bits.Reverse(uint(i)) >> shift)
	}

	return r, nil
}

func (r *radix2) Len() int { return r.n }

func (r *radix2) Forward(dst, src []complex128) error {
	r.load(dst, src)
	r.transform(dst, false)

	return nil
}

func (r *radix2) Inverse(dst, src []complex128) error {
	r.load(dst, src)
	r.transform(dst, true)

	scale := 1 / float64(r.n)
	for i := range dst {
		dst[i] = complex(real(dst[i])*scale, imag(dst[i])*scale)
	}

	return nil
}

// load copies src into dst in bit-reversed order.
func (r *radix2) load(dst, src []complex128) {
	if sameBuffer(dst, src) {
		for i, j := range r.rev {
			if i < j {
				dst[i], dst[j] = dst[j], dst[i]
			}
		}

		return
	}

	for i, j := range r.rev {
		dst[j] = src[i]
	}
}

func (r *radix2) transform(x []complex128, inverse bool) {
	n := r.n

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size

		for start := 0; start < n; start += size {
			for k := range half {
				w := r.twiddle[k*step]
				if inverse {
					w = complex(real(w), -imag(w))
				}

				a := x[start+k]
				b := x[start+k+half] * w
				x[start+k] = a + b
				x[start+k+half] = a - b
			}
		}
	}
}
