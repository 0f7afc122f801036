package fft

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/dspcore/dsp/core"
)

// Backend names.
const (
	BackendNative  = "native"
	BackendAlgoFFT = "algofft"
	BackendGonum   = "gonum"
	BackendGoDSP   = "godsp"
)

// Engine computes a complex DFT of a fixed length. Forward is unscaled and
// Inverse divides by Len. dst and src have length Len and may alias.
type Engine interface {
	Len() int
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

// Factory builds an Engine for length n > 0.
type Factory func(n int) (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}

	defaultBackend atomic.Value
)

func init() {
	registry[BackendNative] = newNativeEngine
	registry[BackendAlgoFFT] = newAlgoFFTEngine
	registry[BackendGonum] = newGonumEngine
	registry[BackendGoDSP] = newGoDSPEngine

	defaultBackend.Store(BackendNative)
}

// Register adds or replaces a backend.
func Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("fft: register %q: %w", name, core.ErrNullPointer)
	}

	registryMu.Lock()
	registry[name] = f
	registryMu.Unlock()

	return nil
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// SetDefaultBackend selects the backend NewPlan uses when no WithBackend
// option is given.
func SetDefaultBackend(name string) error {
	if _, err := lookup(name); err != nil {
		return err
	}

	defaultBackend.Store(name)

	return nil
}

// DefaultBackend returns the process-wide backend name.
func DefaultBackend() string {
	return defaultBackend.Load().(string)
}

func lookup(name string) (Factory, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("fft: unknown backend %q: %w", name, core.ErrOutOfRange)
	}

	return f, nil
}

// NewEngine builds a complex engine of length n on the named backend. An
// empty name selects the default backend.
func NewEngine(name string, n int) (Engine, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fft: length %d: %w", n, core.ErrInvalidSize)
	}

	if name == "" {
		name = DefaultBackend()
	}

	f, err := lookup(name)
	if err != nil {
		return nil, err
	}

	e, err := f(n)
	if err != nil {
		return nil, fmt.Errorf("fft: %s backend, length %d: %w: %w", name, n, core.ErrInternal, err)
	}

	return e, nil
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPow2 returns the smallest power of two >= n (1 for n <= 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

func sameBuffer(a, b []complex128) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
