package stft

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
	"github.com/cwbudde/dspcore/dsp/frame"
	"github.com/cwbudde/dspcore/dsp/spectrum"
	"github.com/cwbudde/dspcore/dsp/window"
)

// normFloor guards the Σw² division in Synthesize.
const normFloor = 1e-12

// Option configures an STFT.
type Option func(*config)

type config struct {
	backend    string
	windowOpts []window.Option
}

// WithBackend selects the FFT backend.
func WithBackend(name string) Option {
	return func(c *config) {
		c.backend = name
	}
}

// WithWindowOptions forwards options (periodic, shape parameter) to the
// window generator.
func WithWindowOptions(opts ...window.Option) Option {
	return func(c *config) {
		c.windowOpts = append(c.windowOpts, opts...)
	}
}

// STFT holds the window, the forward and inverse plans and a scratch frame.
// It is not safe for concurrent use.
type STFT struct {
	size int
	hop  int
	typ  window.Type
	win  []float64

	fwd *fft.Plan
	inv *fft.Plan

	buf   []complex128
	frame []float64
}

// New creates an engine with fftSize-point frames advanced by hop samples.
func New(fftSize, hop int, wt window.Type, opts ...Option) (*STFT, error) {
	if fftSize <= 0 || hop <= 0 || hop > fftSize {
		return nil, fmt.Errorf("stft: fft=%d hop=%d: %w", fftSize, hop, core.ErrInvalidSize)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	win, err := window.New(wt, fftSize, cfg.windowOpts...)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	var planOpts []fft.Option
	if cfg.backend != "" {
		planOpts = append(planOpts, fft.WithBackend(cfg.backend))
	}

	fwd, err := fft.NewPlan(fftSize, fft.C2C, fft.Forward, planOpts...)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	inv, err := fft.NewPlan(fftSize, fft.C2C, fft.Backward, planOpts...)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	return &STFT{
		size:  fftSize,
		hop:   hop,
		typ:   wt,
		win:   win,
		fwd:   fwd,
		inv:   inv,
		buf:   make([]complex128, fftSize),
		frame: make([]float64, fftSize),
	}, nil
}

// FFTSize returns the frame length.
func (s *STFT) FFTSize() int { return s.size }

// Hop returns the frame advance.
func (s *STFT) Hop() int { return s.hop }

// WindowType returns the analysis window family.
func (s *STFT) WindowType() window.Type { return s.typ }

// Window returns a copy of the window coefficients.
func (s *STFT) Window() []float64 {
	return append([]float64(nil), s.win...)
}

// NumFrames returns the frame count for an n-sample signal: 1 when n is
// shorter than a frame, otherwise 1 + ⌈(n−fft)/hop⌉.
func (s *STFT) NumFrames(n int) int {
	if n <= 0 {
		return 0
	}

	if n < s.size {
		return 1
	}

	return 1 + (n-s.size+s.hop-1)/s.hop
}

// Process windows one frame of src and writes its spectrum into dst.
func (s *STFT) Process(dst []complex128, src []float64) error {
	if s == nil || dst == nil || src == nil {
		return fmt.Errorf("stft: process: %w", core.ErrNullPointer)
	}

	if len(src) != s.size || len(dst) != s.size {
		return fmt.Errorf("stft: process fft=%d given dst=%d src=%d: %w", s.size, len(dst), len(src), core.ErrInvalidSize)
	}

	for i, v := range src {
		s.buf[i] = complex(v*s.win[i], 0)
	}

	if err := s.fwd.Execute(dst, s.buf); err != nil {
		return fmt.Errorf("stft: %w", err)
	}

	return nil
}

// Reconstruct inverse-transforms spec, windows the result and adds it to
// outAdd. When normAdd is non-nil, w² is added to it. Both buffers are
// accumulated, never overwritten.
func (s *STFT) Reconstruct(spec []complex128, outAdd, normAdd []float64) error {
	if s == nil || spec == nil || outAdd == nil {
		return fmt.Errorf("stft: reconstruct: %w", core.ErrNullPointer)
	}

	if len(spec) != s.size || len(outAdd) != s.size || (normAdd != nil && len(normAdd) != s.size) {
		return fmt.Errorf("stft: reconstruct fft=%d given spec=%d out=%d norm=%d: %w",
			s.size, len(spec), len(outAdd), len(normAdd), core.ErrInvalidSize)
	}

	if err := s.inv.Execute(s.buf, spec); err != nil {
		return fmt.Errorf("stft: %w", err)
	}

	for i, w := range s.win {
		outAdd[i] += real(s.buf[i]) * w
	}

	if normAdd != nil {
		for i, w := range s.win {
			normAdd[i] += w * w
		}
	}

	return nil
}

// Spectrogram returns the magnitudes of all frames of signal, row-major
// with FFTSize columns per frame.
func (s *STFT) Spectrogram(signal []float64) ([]float64, int, error) {
	if s == nil || signal == nil {
		return nil, 0, fmt.Errorf("stft: spectrogram: %w", core.ErrNullPointer)
	}

	frames := s.NumFrames(len(signal))
	if frames == 0 {
		return nil, 0, fmt.Errorf("stft: empty signal: %w", core.ErrInvalidSize)
	}

	mag := make([]float64, frames*s.size)
	if _, err := s.SpectrogramTo(mag, signal); err != nil {
		return nil, 0, err
	}

	return mag, frames, nil
}

// SpectrogramTo writes frame magnitudes into dst, which must hold at least
// NumFrames(len(signal))·FFTSize values, and returns the frame count.
func (s *STFT) SpectrogramTo(dst, signal []float64) (int, error) {
	if s == nil || dst == nil || signal == nil {
		return 0, fmt.Errorf("stft: spectrogram: %w", core.ErrNullPointer)
	}

	frames := s.NumFrames(len(signal))
	if frames == 0 || len(dst) < frames*s.size {
		return 0, fmt.Errorf("stft: spectrogram dst=%d for %d frames: %w", len(dst), frames, core.ErrInvalidSize)
	}

	spec := make([]complex128, s.size)

	for f := range frames {
		if err := s.analyzeFrame(spec, signal, f); err != nil {
			return 0, err
		}

		if err := spectrum.MagnitudeTo(dst[f*s.size:(f+1)*s.size], spec); err != nil {
			return 0, fmt.Errorf("stft: %w", err)
		}
	}

	return frames, nil
}

// Analyze returns the spectra of every frame of signal.
func (s *STFT) Analyze(signal []float64) ([][]complex128, error) {
	if s == nil || signal == nil {
		return nil, fmt.Errorf("stft: analyze: %w", core.ErrNullPointer)
	}

	frames := s.NumFrames(len(signal))
	if frames == 0 {
		return nil, fmt.Errorf("stft: empty signal: %w", core.ErrInvalidSize)
	}

	out := make([][]complex128, frames)
	for f := range out {
		out[f] = make([]complex128, s.size)
		if err := s.analyzeFrame(out[f], signal, f); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Synthesize overlap-adds the inverse of frames into an n-sample signal and
// divides by the accumulated Σw². Samples with Σw² below 1e-12 are zero.
func (s *STFT) Synthesize(frames [][]complex128, n int) ([]float64, error) {
	if s == nil || frames == nil {
		return nil, fmt.Errorf("stft: synthesize: %w", core.ErrNullPointer)
	}

	if n <= 0 {
		return nil, fmt.Errorf("stft: synthesize length %d: %w", n, core.ErrInvalidSize)
	}

	span := (len(frames)-1)*s.hop + s.size
	out := make([]float64, max(span, n))
	norm := make([]float64, len(out))

	for f, spec := range frames {
		start := f * s.hop
		if err := s.Reconstruct(spec, out[start:start+s.size], norm[start:start+s.size]); err != nil {
			return nil, err
		}
	}

	out = out[:n]
	for i := range out {
		if norm[i] > normFloor {
			out[i] /= norm[i]
		} else {
			out[i] = 0
		}
	}

	return out, nil
}

func (s *STFT) analyzeFrame(dst []complex128, signal []float64, f int) error {
	if err := frame.Fetch(s.frame, signal, s.hop, f, false, nil); err != nil {
		return fmt.Errorf("stft: %w", err)
	}

	return s.Process(dst, s.frame)
}
