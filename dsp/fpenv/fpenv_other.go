//go:build !amd64

package fpenv

const (
	archSupported = false

	dazMask uint32 = 0
	ftzMask uint32 = 0
)

func readControl() uint32 { return 0 }

func writeControl(uint32) {}
