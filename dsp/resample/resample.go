package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/tphakala/simd/f64"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = fmt.Errorf("resample: invalid ratio: %w", core.ErrOutOfRange)
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = fmt.Errorf("resample: invalid sample rate: %w", core.ErrOutOfRange)
)

// Quality controls the interpolation kernel.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
	// QualityLinear interpolates linearly between neighbouring inputs with
	// no anti-aliasing filter.
	QualityLinear
)

func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityBalanced:
		return "balanced"
	case QualityBest:
		return "best"
	case QualityLinear:
		return "linear"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// ParseQuality resolves a quality name.
func ParseQuality(s string) (Quality, error) {
	for q := QualityFast; q <= QualityLinear; q++ {
		if q.String() == s {
			return q, nil
		}
	}

	return 0, fmt.Errorf("resample: quality %q: %w", s, core.ErrOutOfRange)
}

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	case QualityLinear:
		return Profile{TapsPerPhase: 2, CutoffScale: 1}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
	maxDen       int
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects a predefined quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 equals the theoretical anti-aliasing cutoff.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithMaxDenominator caps denominator size for rate-ratio approximation.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func defaultConfig() config {
	return config{
		quality: QualityBalanced,
		maxDen:  4096,
	}
}

func (c config) finalized() config {
	p := QualityProfile(c.quality)
	if c.tapsPerPhase <= 0 {
		c.tapsPerPhase = p.TapsPerPhase
	}

	if c.cutoffScale <= 0 || c.cutoffScale > 1 {
		c.cutoffScale = p.CutoffScale
	}

	if c.kaiserBeta <= 0 {
		c.kaiserBeta = p.KaiserBeta
	}

	if c.maxDen <= 0 {
		c.maxDen = 4096
	}

	return c
}

// Resampler performs streaming rational sample-rate conversion. Output k
// sits at input position k·down/up. It is not safe for concurrent use.
type Resampler struct {
	up   int
	down int

	quality Quality
	profile Profile

	taps   []float64
	phases [][]float64 // reversed and zero-padded to span
	span   int

	// Next output is at input index inputIndex + phase/up.
	phase      int
	inputIndex int
	totalIn    int
	history    []float64
	work       []float64
}

// NewRational creates a resampler for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidRatio, up, down)
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.quality < QualityFast || cfg.quality > QualityLinear {
		return nil, fmt.Errorf("resample: %v: %w", cfg.quality, core.ErrOutOfRange)
	}

	cfg = cfg.finalized()

	r := &Resampler{
		up:      up,
		down:    down,
		quality: cfg.quality,
		profile: QualityProfile(cfg.quality),
	}

	if cfg.quality == QualityLinear {
		r.span = 1
		r.Reset()

		return r, nil
	}

	taps, phases, span, err := designPolyphaseFIR(up, down, cfg)
	if err != nil {
		return nil, err
	}

	r.taps = taps
	r.phases = phases
	r.span = span
	r.Reset()

	return r, nil
}

// NewForRates creates a resampler by approximating outRate/inRate as a ratio.
func NewForRates(inRate, outRate float64, opts ...Option) (*Resampler, error) {
	if !(inRate > 0) || !(outRate > 0) || math.IsInf(inRate, 0) || math.IsInf(outRate, 0) {
		return nil, fmt.Errorf("%w: %g -> %g", ErrInvalidRate, inRate, outRate)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg = cfg.finalized()

	up, down := approximateRatio(outRate/inRate, cfg.maxDen)

	return NewRational(up, down, opts...)
}

// Upsample2x is a convenience wrapper for 2:1 conversion.
func Upsample2x(input []float64, opts ...Option) ([]float64, error) {
	return Resample(input, 2, 1, opts...)
}

// Downsample2x is a convenience wrapper for 1:2 conversion.
func Downsample2x(input []float64, opts ...Option) ([]float64, error) {
	return Resample(input, 1, 2, opts...)
}

// Resample converts input using ratio up/down as a one-shot helper. The
// filter tail is not flushed, so len(out) matches PredictOutputLen.
func Resample(input []float64, up, down int, opts ...Option) ([]float64, error) {
	r, err := NewRational(up, down, opts...)
	if err != nil {
		return nil, err
	}

	return r.Process(input)
}

// Reset clears internal filter state.
func (r *Resampler) Reset() {
	r.phase = 0
	r.inputIndex = 0
	r.totalIn = 0

	// Sinc mode starts from span-1 zeros of past input; linear mode keeps
	// only the sample under the cursor.
	keep := r.span - 1
	r.history = core.EnsureLen(r.history, keep)
	clear(r.history)
}

// Process converts an input block and preserves internal state so that
// consecutive calls produce the same samples as one call on the
// concatenation.
func (r *Resampler) Process(input []float64) ([]float64, error) {
	if r == nil {
		return nil, fmt.Errorf("resample: %w", core.ErrNullPointer)
	}

	if len(input) == 0 {
		return nil, nil
	}

	out := make([]float64, 0, r.PredictOutputLen(len(input)))

	r.work = core.EnsureLen(r.work, len(r.history)+len(input))
	copy(r.work, r.history)
	copy(r.work[len(r.history):], input)

	base := r.totalIn - len(r.history)
	lastAvail := r.totalIn + len(input) - 1

	if r.quality == QualityLinear {
		out = r.runLinear(out, base, lastAvail, false)
	} else {
		out = r.runSinc(out, base, lastAvail)
	}

	r.totalIn += len(input)

	keep := min(r.keepLen(), len(r.work))
	r.history = append(r.history[:0], r.work[len(r.work)-keep:]...)

	return out, nil
}

// Flush returns the samples still owed for the input seen so far and
// resets the stream. Sinc mode drains the filter tail with zeros; linear
// mode holds the last input for the final interpolation points.
func (r *Resampler) Flush() []float64 {
	if r == nil || r.totalIn == 0 {
		return nil
	}

	var out []float64

	if r.quality == QualityLinear {
		base := r.totalIn - len(r.history)
		r.work = append(r.work[:0], r.history...)
		out = r.runLinear(out, base, r.totalIn-1, true)
	} else {
		out, _ = r.Process(make([]float64, r.span-1))
	}

	r.Reset()

	return out
}

func (r *Resampler) runSinc(out []float64, base, lastAvail int) []float64 {
	for r.inputIndex <= lastAvail {
		lo := r.inputIndex - r.span + 1 - base
		y := f64.DotProduct(r.phases[r.phase], r.work[lo:lo+r.span])
		out = append(out, y)

		r.advance()
	}

	return out
}

// runLinear interpolates between x[i] and x[i+1]. Without flush it waits for
// x[i+1]; with flush it saturates at the last sample.
func (r *Resampler) runLinear(out []float64, base, lastAvail int, flush bool) []float64 {
	for r.inputIndex <= lastAvail {
		i := r.inputIndex - base
		x0 := r.work[i]

		var y float64

		switch {
		case r.inputIndex+1 <= lastAvail:
			x1 := r.work[i+1]
			y = x0 + (x1-x0)*float64(r.phase)/float64(r.up)
		case flush:
			y = x0
		default:
			return out
		}

		out = append(out, y)

		r.advance()
	}

	return out
}

func (r *Resampler) advance() {
	r.phase += r.down
	r.inputIndex += r.phase / r.up
	r.phase %= r.up
}

func (r *Resampler) keepLen() int {
	if r.quality == QualityLinear {
		// The cursor may sit on the newest sample waiting for its successor.
		return 1
	}

	return r.span - 1
}

// PredictOutputLen returns the number of samples the next Process call
// produces for inputLen samples.
func (r *Resampler) PredictOutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}

	lastAvail := r.totalIn + inputLen - 1
	if r.quality == QualityLinear {
		lastAvail--
	}

	i := r.inputIndex
	phase := r.phase

	count := 0
	for i <= lastAvail {
		count++
		phase += r.down
		i += phase / r.up
		phase %= r.up
	}

	return count
}

// Ratio returns reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality {
	return r.quality
}

// TapsPerPhase returns the length of each polyphase branch.
func (r *Resampler) TapsPerPhase() int {
	if r.quality == QualityLinear {
		return 2
	}

	return r.span
}

// GroupDelay returns the filter delay in output samples. Linear mode has
// none.
func (r *Resampler) GroupDelay() float64 {
	if len(r.taps) == 0 {
		return 0
	}

	return float64(len(r.taps)-1) / (2 * float64(r.down))
}

// Prototype returns a copy of the underlying prototype FIR taps.
func (r *Resampler) Prototype() []float64 {
	return append([]float64(nil), r.taps...)
}
