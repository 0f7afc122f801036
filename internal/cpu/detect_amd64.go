//go:build amd64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// MXCSR.FTZ and MXCSR.DAZ are available on every SSE2-capable x86-64 part.
func detectFeaturesImpl() Features {
	return Features{
		HasSSE2:          cpu.X86.HasSSE2,
		HasSSE41:         cpu.X86.HasSSE41,
		HasAVX2:          cpu.X86.HasAVX2,
		HasAVX512:        cpu.X86.HasAVX512,
		FlushToZero:      cpu.X86.HasSSE2,
		DenormalsAreZero: cpu.X86.HasSSE2,
		Architecture:     runtime.GOARCH,
	}
}
