package core

// EnsureLen returns buf resliced to n when its capacity allows, and a fresh
// slice otherwise. Contents are unspecified.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}

// RealToComplex writes src into dst with zero imaginary parts. dst must be
// at least len(src) long; the remainder is zeroed.
func RealToComplex(dst []complex128, src []float64) {
	for i, v := range src {
		dst[i] = complex(v, 0)
	}

	clear(dst[len(src):])
}

// RealParts writes real(src[i]) into dst.
func RealParts(dst []float64, src []complex128) {
	for i := range min(len(dst), len(src)) {
		dst[i] = real(src[i])
	}
}

// Reverse reverses buf in place.
func Reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
