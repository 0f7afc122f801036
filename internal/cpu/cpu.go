// Package cpu detects the processor capabilities the floating-point
// environment and the dump tool report on.
//
// Detection runs once and is cached. Tests may override the result with
// SetForcedFeatures.
package cpu

import (
	"strings"
	"sync"
)

// SIMDLevel is the widest vector extension available on the host.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDSSE41
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDSSE41:
		return "SSE4.1"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the capabilities relevant to denormal handling and
// kernel reporting.
type Features struct {
	HasSSE2   bool
	HasSSE41  bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	// FlushToZero reports a controllable flush-to-zero mode for results.
	FlushToZero bool
	// DenormalsAreZero reports a controllable denormals-are-zero mode for operands.
	DenormalsAreZero bool

	Architecture string
}

// Level returns the widest SIMD extension in f.
func (f Features) Level() SIMDLevel {
	switch {
	case f.HasAVX512:
		return SIMDAVX512
	case f.HasAVX2:
		return SIMDAVX2
	case f.HasSSE41:
		return SIMDSSE41
	case f.HasSSE2:
		return SIMDSSE2
	case f.HasNEON:
		return SIMDNEON
	default:
		return SIMDNone
	}
}

// String lists the detected extensions, e.g. "amd64: SSE2 SSE4.1 AVX2 FTZ DAZ".
func (f Features) String() string {
	var parts []string

	flags := []struct {
		on   bool
		name string
	}{
		{f.HasSSE2, "SSE2"},
		{f.HasSSE41, "SSE4.1"},
		{f.HasAVX2, "AVX2"},
		{f.HasAVX512, "AVX-512"},
		{f.HasNEON, "NEON"},
		{f.FlushToZero, "FTZ"},
		{f.DenormalsAreZero, "DAZ"},
	}
	for _, fl := range flags {
		if fl.on {
			parts = append(parts, fl.name)
		}
	}

	if len(parts) == 0 {
		return f.Architecture + ": generic"
	}

	return f.Architecture + ": " + strings.Join(parts, " ")
}

var (
	detectedFeatures Features
	detectOnce       sync.Once
	detectMutex      sync.Mutex

	forcedFeatures *Features
	forcedMutex    sync.RWMutex
)

// DetectFeatures returns the CPU features of the current system.
// It is safe for concurrent use.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()

	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}
