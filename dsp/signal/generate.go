package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/tphakala/simd/f64"
)

// Generator creates deterministic test signals. Every noise call restarts
// from the configured seed, so equal seeds give equal output.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

func (g *Generator) check(what string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("signal: %s samples %d: %w", what, samples, core.ErrInvalidSize)
	}

	if !(g.cfg.SampleRate > 0) {
		return fmt.Errorf("signal: %s sample rate %g: %w", what, g.cfg.SampleRate, core.ErrOutOfRange)
	}

	return nil
}

// Sine generates amplitude·sin(2π·f·n/fs).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.check("sine", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// Multisine sums equal-amplitude sines and scales the sum so its
// theoretical peak is amplitude.
func (g *Generator) Multisine(freqsHz []float64, amplitude float64, samples int) ([]float64, error) {
	if len(freqsHz) == 0 {
		return nil, fmt.Errorf("signal: multisine without frequencies: %w", core.ErrInvalidSize)
	}

	if err := g.check("multisine", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	each := amplitude / float64(len(freqsHz))

	for _, f := range freqsHz {
		step := 2 * math.Pi * f / g.cfg.SampleRate
		for i := range out {
			out[i] += each * math.Sin(step*float64(i))
		}
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples %d: %w", samples, core.ErrInvalidSize)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude %g: %w", amplitude, core.ErrOutOfRange)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// Impulse returns samples zeros with amplitude at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: impulse samples %d: %w", samples, core.ErrInvalidSize)
	}

	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("signal: impulse position %d of %d: %w", pos, samples, core.ErrOutOfRange)
	}

	out := make([]float64, samples)
	out[pos] = amplitude

	return out, nil
}

// LinearSweep generates a chirp whose frequency moves linearly from
// startHz to endHz over the buffer.
func (g *Generator) LinearSweep(startHz, endHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.check("sweep", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	dur := float64(samples) / g.cfg.SampleRate
	rate := (endHz - startHz) / dur

	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*(startHz*t+0.5*rate*t*t))
	}

	return out, nil
}

// LogSweep generates an exponential chirp from startHz to endHz. Both
// must be positive.
func (g *Generator) LogSweep(startHz, endHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.check("sweep", samples); err != nil {
		return nil, err
	}

	if !(startHz > 0) || !(endHz > 0) {
		return nil, fmt.Errorf("signal: log sweep %g..%g Hz: %w", startHz, endHz, core.ErrOutOfRange)
	}

	if startHz == endHz {
		return g.Sine(startHz, amplitude, samples)
	}

	out := make([]float64, samples)
	l := float64(samples) / g.cfg.SampleRate / math.Log(endHz/startHz)

	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*startHz*l*(math.Exp(t/l)-1))
	}

	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: target peak %g: %w", targetPeak, core.ErrOutOfRange)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize empty input: %w", core.ErrInvalidSize)
	}

	var peak float64
	for _, v := range data {
		peak = max(peak, math.Abs(v))
	}

	out := make([]float64, len(data))
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	f64.Scale(out, data, targetPeak/peak)

	return out, nil
}

// Clip limits every sample to [lo, hi].
func Clip(data []float64, lo, hi float64) ([]float64, error) {
	if lo > hi {
		return nil, fmt.Errorf("signal: clip range [%g, %g]: %w", lo, hi, core.ErrOutOfRange)
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = core.Clamp(v, lo, hi)
	}

	return out, nil
}

// RemoveDC subtracts the mean.
func RemoveDC(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: remove dc on empty input: %w", core.ErrInvalidSize)
	}

	mean := f64.Sum(data) / float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}

	return out, nil
}

// EnvelopeFollower tracks |x| with one-pole smoothing: attack applies
// while the level rises, release while it falls. Both are in (0, 1], 1
// meaning no smoothing.
func EnvelopeFollower(data []float64, attack, release float64) ([]float64, error) {
	if !(attack > 0 && attack <= 1) || !(release > 0 && release <= 1) {
		return nil, fmt.Errorf("signal: envelope coefficients %g/%g: %w", attack, release, core.ErrOutOfRange)
	}

	out := make([]float64, len(data))

	var env float64

	for i, v := range data {
		a := math.Abs(v)

		coeff := release
		if a > env {
			coeff = attack
		}

		env += coeff * (a - env)
		out[i] = env
	}

	return out, nil
}
