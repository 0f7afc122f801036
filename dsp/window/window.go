package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/dspcore/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeNuttall
	TypeBartlett
	TypeBohman
	TypeCosine
	TypePlanckTaper
	TypeFlatTop
	TypeKaiser
	TypeTukey
	TypeTriangle
	TypeWelch
	TypeGauss

	typeCount
)

// Default shape parameters for the parametric families.
const (
	DefaultKaiserBeta    = 8.6
	DefaultTukeyAlpha    = 0.5
	DefaultPlanckEpsilon = 0.1
	DefaultGaussAlpha    = 2.5
)

// Metadata describes a window family.
type Metadata struct {
	Name       string
	Parametric bool
	// DefaultParam is the shape parameter used when none is supplied.
	DefaultParam float64
}

var metadataByType = [typeCount]Metadata{
	TypeRectangular:    {Name: "Rectangular"},
	TypeHann:           {Name: "Hann"},
	TypeHamming:        {Name: "Hamming"},
	TypeBlackman:       {Name: "Blackman"},
	TypeBlackmanHarris: {Name: "Blackman-Harris"},
	TypeNuttall:        {Name: "Nuttall"},
	TypeBartlett:       {Name: "Bartlett"},
	TypeBohman:         {Name: "Bohman"},
	TypeCosine:         {Name: "Cosine"},
	TypePlanckTaper:    {Name: "Planck-taper", Parametric: true, DefaultParam: DefaultPlanckEpsilon},
	TypeFlatTop:        {Name: "Flat-top"},
	TypeKaiser:         {Name: "Kaiser", Parametric: true, DefaultParam: DefaultKaiserBeta},
	TypeTukey:          {Name: "Tukey", Parametric: true, DefaultParam: DefaultTukeyAlpha},
	TypeTriangle:       {Name: "Triangle"},
	TypeWelch:          {Name: "Welch"},
	TypeGauss:          {Name: "Gauss", Parametric: true, DefaultParam: DefaultGaussAlpha},
}

var (
	hannCoeffs           = []float64{0.5, -0.5}
	hammingCoeffs        = []float64{0.54, -0.46}
	blackmanCoeffs       = []float64{0.42, -0.5, 0.08}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	nuttallCoeffs        = []float64{0.355768, -0.487396, 0.144232, -0.012604}
	flatTopCoeffs        = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	param    float64
	hasParam bool
	periodic bool
}

// WithAlpha sets the shape parameter of a parametric window: Kaiser β,
// Tukey α, Planck-taper ε or Gauss α. Negative values are ignored.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.param = v
			c.hasParam = true
		}
	}
}

// WithPeriodic selects the periodic (DFT-even) form instead of the
// default symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// String returns the family name.
func (t Type) String() string {
	if t >= 0 && t < typeCount {
		return metadataByType[t].Name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t names a known family.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// Parse resolves a case-insensitive family name such as "hann",
// "blackman-harris" or "boxcar".
func Parse(name string) (Type, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))

	switch key {
	case "boxcar", "rect", "rectangular":
		return TypeRectangular, nil
	case "hann", "hanning":
		return TypeHann, nil
	}

	for t := range typeCount {
		n := strings.ReplaceAll(strings.ToLower(metadataByType[t].Name), "-", "")
		if n == key {
			return t, nil
		}
	}

	return 0, fmt.Errorf("window: unknown type %q: %w", name, core.ErrOutOfRange)
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if t.Valid() {
		return metadataByType[t]
	}

	return Metadata{}
}

// Generate returns window coefficients of the given length, or nil for a
// non-positive length or unknown type. A length of 1 always yields [1].
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 || !t.Valid() {
		return nil
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.hasParam {
		cfg.param = metadataByType[t].DefaultParam
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	if cfg.periodic {
		for i := range out {
			out[i] = evalWindow(t, samplePosition(i, length, true), cfg.param)
		}

		return out
	}

	// Evaluate the left half and mirror it so w[n] == w[N-1-n] exactly.
	for i := range (length + 1) / 2 {
		v := evalWindow(t, samplePosition(i, length, false), cfg.param)
		out[i] = v
		out[length-1-i] = v
	}

	return out
}

// New is the status-returning form of Generate.
func New(t Type, length int, opts ...Option) ([]float64, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("window: type %d: %w", int(t), core.ErrOutOfRange)
	}

	if err := validateLength(length); err != nil {
		return nil, err
	}

	return Generate(t, length, opts...), nil
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return New(TypeHann, size, opts...)
}

// Hamming returns Hamming window coefficients.
func Hamming(size int, opts ...Option) ([]float64, error) {
	return New(TypeHamming, size, opts...)
}

// Blackman returns Blackman window coefficients.
func Blackman(size int, opts ...Option) ([]float64, error) {
	return New(TypeBlackman, size, opts...)
}

// FlatTop returns 5-term flat-top window coefficients.
func FlatTop(size int, opts ...Option) ([]float64, error) {
	return New(TypeFlatTop, size, opts...)
}

// Kaiser returns Kaiser window coefficients for shape parameter beta.
func Kaiser(size int, beta float64, opts ...Option) ([]float64, error) {
	if err := validateKaiser(size, beta); err != nil {
		return nil, err
	}

	return Generate(TypeKaiser, size, append(opts, WithAlpha(beta))...), nil
}

// Tukey returns Tukey window coefficients; alpha is the tapered fraction.
func Tukey(size int, alpha float64, opts ...Option) ([]float64, error) {
	if err := validateTukey(size, alpha); err != nil {
		return nil, err
	}

	return Generate(TypeTukey, size, append(opts, WithAlpha(alpha))...), nil
}

// PlanckTaper returns Planck-taper coefficients; epsilon is the tapered
// fraction on each side.
func PlanckTaper(size int, epsilon float64, opts ...Option) ([]float64, error) {
	if err := validatePlanck(size, epsilon); err != nil {
		return nil, err
	}

	return Generate(TypePlanckTaper, size, append(opts, WithAlpha(epsilon))...), nil
}

// Gaussian returns Gaussian window coefficients.
func Gaussian(size int, alpha float64, opts ...Option) ([]float64, error) {
	if err := validateGauss(size, alpha); err != nil {
		return nil, err
	}

	return Generate(TypeGauss, size, append(opts, WithAlpha(alpha))...), nil
}

// CoherentGain returns sum(w)/N.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// ApplyCoefficientsTo writes samples*coeffs into dst.
func ApplyCoefficientsTo(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, samples, coeffs)

	return nil
}

// evalWindow evaluates family t at normalized position x in [0, 1].
func evalWindow(t Type, x, param float64) float64 {
	x = math.Min(math.Max(x, 0), 1)

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	case TypeNuttall:
		return cosineFromCoeffs(x, nuttallCoeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	case TypeBartlett:
		return 1 - math.Abs(2*x-1)
	case TypeBohman:
		r := math.Abs(2*x - 1)
		return (1-r)*math.Cos(math.Pi*r) + math.Sin(math.Pi*r)/math.Pi
	case TypeCosine:
		return math.Sin(math.Pi * x)
	case TypePlanckTaper:
		return planckAt(x, param)
	case TypeKaiser:
		return kaiserAt(x, param)
	case TypeTukey:
		return tukeyAt(x, param)
	case TypeTriangle:
		if x <= 0.5 {
			return 2 * x
		}

		return 2 * (1 - x)
	case TypeWelch:
		d := 2*x - 1
		return 1 - d*d
	case TypeGauss:
		v := (2*x - 1) * param
		return math.Exp(-0.5 * v * v)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	// Fold onto the left half so both tapers are mirror images.
	d := math.Min(x, 1-x)
	if d >= alpha/2 {
		return 1
	}

	return 0.5 * (1 + math.Cos(math.Pi*(2*d/alpha-1)))
}

func planckAt(x, eps float64) float64 {
	if eps <= 0 {
		return 1
	}

	eps = math.Min(eps, 0.5)

	d := math.Min(x, 1-x)
	switch {
	case d <= 0:
		return 0
	case d >= eps:
		return 1
	}

	z := eps/d - eps/(eps-d)
	if z > 700 {
		return 0
	}

	return 1 / (1 + math.Exp(z))
}

// besselI0 sums the first 20 terms of the power series of I0, stopping
// once a term drops below 1e-12.
func besselI0(x float64) float64 {
	const maxTerms = 20

	q := x * x / 4
	sum := 1.0
	term := 1.0

	for k := 1; k < maxTerms; k++ {
		term *= q / float64(k*k)
		sum += term

		if term < 1e-12 {
			break
		}
	}

	return sum
}
