package mel

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/dct"
)

// DefaultLogEpsilon is added before the log when Config.LogEpsilon is 0.
const DefaultLogEpsilon = 1e-10

// Config describes an MFCC pipeline. Zero FMax means fs/2, zero DCTType
// means DCT-II and zero LogEpsilon means DefaultLogEpsilon. Lifter ≤ 0
// disables liftering.
type Config struct {
	NFFT       int
	NMels      int
	NMFCC      int
	SampleRate float64
	FMin       float64
	FMax       float64
	Variant    Variant
	DCTType    dct.Type
	Lifter     float64
	LogEpsilon float64
}

// MFCC is a retained plan: filterbank, DCT plan and scratch. Process does
// not allocate. A plan is not safe for concurrent use.
type MFCC struct {
	cfg    Config
	bank   *Bank
	dct    *dct.Plan
	logMel []float64
	coeffs []float64
}

// NewMFCC validates cfg and precomputes the pipeline.
func NewMFCC(cfg Config) (*MFCC, error) {
	if cfg.FMax == 0 {
		cfg.FMax = cfg.SampleRate / 2
	}

	if cfg.DCTType == 0 {
		cfg.DCTType = dct.TypeII
	}

	if cfg.LogEpsilon == 0 {
		cfg.LogEpsilon = DefaultLogEpsilon
	}

	if !(cfg.LogEpsilon > 0) {
		return nil, fmt.Errorf("mel: log epsilon %g: %w", cfg.LogEpsilon, core.ErrOutOfRange)
	}

	if cfg.NMFCC <= 0 || cfg.NMFCC > cfg.NMels {
		return nil, fmt.Errorf("mel: %d coefficients from %d bands: %w", cfg.NMFCC, cfg.NMels, core.ErrOutOfRange)
	}

	bank, err := Filterbank(cfg.NFFT, cfg.NMels, cfg.SampleRate, cfg.FMin, cfg.FMax, cfg.Variant)
	if err != nil {
		return nil, err
	}

	plan, err := dct.NewPlan(cfg.NMels, cfg.DCTType)
	if err != nil {
		return nil, fmt.Errorf("mel: %w", err)
	}

	return &MFCC{
		cfg:    cfg,
		bank:   bank,
		dct:    plan,
		logMel: make([]float64, cfg.NMels),
		coeffs: make([]float64, cfg.NMels),
	}, nil
}

// Config returns the resolved configuration.
func (p *MFCC) Config() Config { return p.cfg }

// Bank returns the filterbank.
func (p *MFCC) Bank() *Bank { return p.bank }

// Process computes NMFCC coefficients from one power spectrum of
// NFFT/2+1 bins.
func (p *MFCC) Process(dst, power []float64) error {
	if p == nil || dst == nil {
		return fmt.Errorf("mel: %w", core.ErrNullPointer)
	}

	if len(dst) != p.cfg.NMFCC {
		return fmt.Errorf("mel: dst length %d, want %d: %w", len(dst), p.cfg.NMFCC, core.ErrInvalidSize)
	}

	if err := p.bank.LogMel(p.logMel, power, p.cfg.LogEpsilon); err != nil {
		return err
	}

	if err := p.dct.Forward(p.coeffs, p.logMel); err != nil {
		return fmt.Errorf("mel: %w", err)
	}

	copy(dst, p.coeffs)
	Lifter(dst, p.cfg.Lifter)

	return nil
}

// ProcessFrames runs Process over frames consecutive spectra laid out
// row-major with NumBins values per frame.
func (p *MFCC) ProcessFrames(spec []float64, frames int) ([]float64, error) {
	if p == nil {
		return nil, fmt.Errorf("mel: %w", core.ErrNullPointer)
	}

	bins := p.bank.NumBins()
	if frames <= 0 || len(spec) != frames*bins {
		return nil, fmt.Errorf("mel: %d frames of %d bins given %d values: %w",
			frames, bins, len(spec), core.ErrInvalidSize)
	}

	out := make([]float64, frames*p.cfg.NMFCC)

	for f := range frames {
		dst := out[f*p.cfg.NMFCC : (f+1)*p.cfg.NMFCC]
		if err := p.Process(dst, spec[f*bins:(f+1)*bins]); err != nil {
			return nil, fmt.Errorf("mel: frame %d: %w", f, err)
		}
	}

	return out, nil
}

// Lifter scales c[i] by 1 + (L/2)·sin(πi/L) for i ≥ 1. L ≤ 0 is a no-op.
func Lifter(c []float64, l float64) {
	if l <= 0 {
		return
	}

	for i := 1; i < len(c); i++ {
		c[i] *= 1 + l/2*math.Sin(math.Pi*float64(i)/l)
	}
}
