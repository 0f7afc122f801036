package frame

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/dspcore/dsp/core"
)

// NumFrames returns the number of frames covering signalLen samples.
func NumFrames(signalLen, frameLen, hop int, centered bool) int {
	if signalLen <= 0 || frameLen <= 0 || hop <= 0 {
		return 0
	}

	if centered {
		return (signalLen + hop - 1) / hop
	}

	if signalLen < frameLen {
		return 0
	}

	return 1 + (signalLen-frameLen)/hop
}

// Start returns the signal index of the first sample of frame index.
func Start(frameLen, hop, index int, centered bool) int {
	start := index * hop
	if centered {
		start -= frameLen / 2
	}

	return start
}

// Fetch copies frame index of signal into dst (len(dst) is the frame
// length) and multiplies it by window when window is non-nil.
func Fetch(dst, signal []float64, hop, index int, centered bool, window []float64) error {
	if dst == nil || signal == nil {
		return fmt.Errorf("frame: fetch: %w", core.ErrNullPointer)
	}

	frameLen := len(dst)
	if frameLen == 0 || len(signal) == 0 || hop <= 0 || index < 0 {
		return fmt.Errorf("frame: fetch frame=%d signal=%d hop=%d index=%d: %w",
			frameLen, len(signal), hop, index, core.ErrInvalidSize)
	}

	if window != nil && len(window) != frameLen {
		return fmt.Errorf("frame: window length %d for frame %d: %w", len(window), frameLen, core.ErrInvalidSize)
	}

	start := Start(frameLen, hop, index, centered)
	n := len(signal)

	for i := range dst {
		j := start + i

		switch {
		case j >= 0 && j < n:
			dst[i] = signal[j]
		case centered:
			dst[i] = signal[Reflect(j, n)]
		default:
			dst[i] = 0
		}
	}

	if window != nil {
		vecmath.MulBlockInPlace(dst, window)
	}

	return nil
}

// OverlapAdd adds frame into dst at index·hop. Samples that would land
// outside dst are dropped.
func OverlapAdd(dst, frame []float64, hop, index int) {
	start := index * hop
	if start >= len(dst) || start+len(frame) <= 0 {
		return
	}

	lo := 0
	if start < 0 {
		lo = -start
	}

	hi := len(frame)
	if start+hi > len(dst) {
		hi = len(dst) - start
	}

	vecmath.AddBlockInPlace(dst[start+lo:start+hi], frame[lo:hi])
}

// Reflect maps j into [0, n) by mirroring about 0 and n−1 without
// repeating the edge sample, folding as often as needed.
func Reflect(j, n int) int {
	if n <= 1 {
		return 0
	}

	period := 2 * (n - 1)

	j %= period
	if j < 0 {
		j += period
	}

	if j >= n {
		j = period - j
	}

	return min(max(j, 0), n-1)
}
