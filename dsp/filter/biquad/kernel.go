package biquad

import (
	"sync"

	"github.com/cwbudde/dspcore/internal/cpu"
)

// blockKernel is one in-place block implementation of the section
// recurrence. All kernels produce bit-identical results; they differ only
// in unrolling.
type blockKernel struct {
	name    string
	process func(c Coefficients, z1, z2 float64, buf []float64) (float64, float64)
}

var (
	genericKernel  = blockKernel{name: "generic", process: processUnrolled2}
	unrolledKernel = blockKernel{name: "unrolled4", process: processUnrolled4}

	kernelOnce sync.Once
	kernel     blockKernel
)

// KernelName reports which block kernel ProcessBlock uses on this host.
func KernelName() string {
	return activeKernel().name
}

func activeKernel() blockKernel {
	kernelOnce.Do(func() {
		kernel = selectKernel(cpu.DetectFeatures())
	})

	return kernel
}

// selectKernel picks the 4x unrolled loop on cores wide enough to keep two
// independent multiply chains in flight.
func selectKernel(f cpu.Features) blockKernel {
	switch f.Level() {
	case cpu.SIMDAVX2, cpu.SIMDAVX512, cpu.SIMDNEON:
		return unrolledKernel
	default:
		return genericKernel
	}
}

func processUnrolled2(c Coefficients, z1, z2 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)

	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + z1
		z1n := b1*x0 - a1*y0 + z2
		z2n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + z1n
		z1 = b1*x1 - a1*y1 + z2n
		z2 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + z1
		z1 = b1*x - a1*y + z2
		z2 = b2*x - a2*y
		buf[i] = y
	}

	return z1, z2
}

func processUnrolled4(c Coefficients, z1, z2 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)

	for ; i+3 < n; i += 4 {
		x0 := buf[i]
		y0 := b0*x0 + z1
		z1a := b1*x0 - a1*y0 + z2
		z2a := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + z1a
		z1b := b1*x1 - a1*y1 + z2a
		z2b := b2*x1 - a2*y1

		x2 := buf[i+2]
		y2 := b0*x2 + z1b
		z1c := b1*x2 - a1*y2 + z2b
		z2c := b2*x2 - a2*y2

		x3 := buf[i+3]
		y3 := b0*x3 + z1c
		z1 = b1*x3 - a1*y3 + z2c
		z2 = b2*x3 - a2*y3

		buf[i] = y0
		buf[i+1] = y1
		buf[i+2] = y2
		buf[i+3] = y3
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + z1
		z1 = b1*x - a1*y + z2
		z2 = b2*x - a2*y
		buf[i] = y
	}

	return z1, z2
}
