//go:build arm64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// FPCR.FZ exists on arm64 but is not toggled from Go here, so the
// flush modes are reported as unavailable.
func detectFeaturesImpl() Features {
	return Features{
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}
