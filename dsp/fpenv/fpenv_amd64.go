//go:build amd64

package fpenv

const (
	archSupported = true

	// MXCSR bits.
	dazMask uint32 = 1 << 6
	ftzMask uint32 = 1 << 15
)

//go:noescape
func getMXCSR() uint32

//go:noescape
func setMXCSR(v uint32)

func readControl() uint32 { return getMXCSR() }

func writeControl(v uint32) { setMXCSR(v) }
