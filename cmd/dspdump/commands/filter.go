package commands

import (
	"math"
	"math/cmplx"

	"github.com/spf13/cobra"

	"github.com/cwbudde/dspcore/dsp/filter/biquad"
	"github.com/cwbudde/dspcore/dsp/filter/design"
	"github.com/cwbudde/dspcore/dsp/filter/fir"
	"github.com/cwbudde/dspcore/dsp/filter/savgol"
	"github.com/cwbudde/dspcore/dsp/resample"
	"github.com/cwbudde/dspcore/dsp/window"
)

var (
	firTaps     int
	firCutoff   float64
	firWindow   string
	firHighpass bool
	firFiltfilt bool
	firFFT      bool

	iirKind   string
	iirCutoff float64
	iirQ      float64
	iirGainDB float64
	iirOrder  int
	iirPoles  bool
	iirPoints int

	savgolWindow int
	savgolOrder  int
	savgolDeriv  int
	savgolMode   string

	resUp      int
	resDown    int
	resRate    float64
	resQuality string
	resFlush   bool
)

var firCmd = &cobra.Command{
	Use:   "fir",
	Short: "Filter the input with a windowed-sinc FIR",
	RunE:  runE(runFIR),
}

var iirCmd = &cobra.Command{
	Use:   "iir",
	Short: "Filter the input with a biquad cascade",
	Long: `Filter the input with a biquad cascade. Sections are processed as
  y = b0*x + z1;  z1 = b1*x - a1*y + z2;  z2 = b2*x - a2*y`,
	RunE: runE(runIIR),
}

var savgolCmd = &cobra.Command{
	Use:   "savgol",
	Short: "Savitzky-Golay smoothing or differentiation",
	RunE:  runE(runSavgol),
}

var resampleCmd = &cobra.Command{
	Use:   "resample",
	Short: "Rational polyphase resampling",
	RunE:  runE(runResample),
}

func init() {
	firCmd.Flags().IntVar(&firTaps, "taps", 63, "number of taps")
	firCmd.Flags().Float64Var(&firCutoff, "cutoff", 0.25, "cutoff as a fraction of Nyquist")
	firCmd.Flags().StringVar(&firWindow, "window", "hamming", "design window: rectangular, hamming, hann or blackman")
	firCmd.Flags().BoolVar(&firHighpass, "highpass", false, "design a high-pass by spectral inversion")
	firCmd.Flags().BoolVar(&firFiltfilt, "filtfilt", false, "zero-phase forward-backward filtering")
	firCmd.Flags().BoolVar(&firFFT, "fft", false, "filter through FFT convolution")

	iirCmd.Flags().StringVar(&iirKind, "kind", "lowpass",
		"lowpass, highpass, bandpass, notch, allpass, peak, lowshelf, highshelf, butter-lp or butter-hp")
	iirCmd.Flags().Float64Var(&iirCutoff, "cutoff", 1000, "corner or centre frequency in Hz")
	iirCmd.Flags().Float64Var(&iirQ, "q", 0.7071067811865476, "quality factor")
	iirCmd.Flags().Float64Var(&iirGainDB, "gain-db", 6, "gain for peak and shelf kinds")
	iirCmd.Flags().IntVar(&iirOrder, "order", 4, "order of the Butterworth kinds")
	iirCmd.Flags().BoolVar(&iirPoles, "poles", false, "print the poles and zeros of each section instead of filtering")
	iirCmd.Flags().IntVar(&iirPoints, "response", 0, "print the frequency response at this many points from 0 to fs/2 instead of filtering")

	savgolCmd.Flags().IntVar(&savgolWindow, "window", 11, "odd window length")
	savgolCmd.Flags().IntVar(&savgolOrder, "order", 3, "polynomial order")
	savgolCmd.Flags().IntVar(&savgolDeriv, "deriv", 0, "derivative order")
	savgolCmd.Flags().StringVar(&savgolMode, "mode", "reflect", "edge mode: reflect, constant, nearest or wrap")

	resampleCmd.Flags().IntVar(&resUp, "up", 2, "interpolation factor")
	resampleCmd.Flags().IntVar(&resDown, "down", 1, "decimation factor")
	resampleCmd.Flags().Float64Var(&resRate, "to", 0, "target sample rate; overrides --up and --down")
	resampleCmd.Flags().StringVar(&resQuality, "quality", "balanced", "fast, balanced, best or linear")
	resampleCmd.Flags().BoolVar(&resFlush, "flush", false, "append the filter tail")

	rootCmd.AddCommand(firCmd, iirCmd, savgolCmd, resampleCmd)
}

func runFIR(cmd *cobra.Command) error {
	wt, err := window.Parse(firWindow)
	if err != nil {
		return &argError{err: err}
	}

	designFn := fir.DesignLowpass
	if firHighpass {
		designFn = fir.DesignHighpass
	}

	h, err := designFn(firTaps, firCutoff, wt)
	if err != nil {
		return err
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	var y []float64

	switch {
	case firFiltfilt:
		y, err = fir.Filtfilt(h, src.samples)
	case firFFT:
		y, err = fir.ApplyFFT(h, src.samples)
	default:
		y, err = fir.Apply(h, src.samples)
	}

	if err != nil {
		return err
	}

	f, err := fir.New(h)
	if err != nil {
		return err
	}

	r := newReport(cmd, "y")
	src.meta(r)
	r.Meta["taps"] = len(h)
	r.Meta["window"] = wt.String()
	r.Meta["dc_gain_db"] = f.MagnitudeDB(0, src.sampleRate)
	r.Meta["nyquist_gain_db"] = f.MagnitudeDB(src.sampleRate/2, src.sampleRate)
	r.addReal(y)

	return emit(cmd, r)
}

func iirDesign(fs float64) ([]biquad.Coefficients, error) {
	if !(iirCutoff > 0 && iirCutoff < fs/2) {
		return nil, argErrorf("--cutoff %g outside (0, %g)", iirCutoff, fs/2)
	}

	if !(iirQ > 0) {
		return nil, argErrorf("--q must be positive, got %g", iirQ)
	}

	one := func(c biquad.Coefficients) []biquad.Coefficients {
		return []biquad.Coefficients{c}
	}

	switch iirKind {
	case "lowpass":
		return one(design.Lowpass(iirCutoff, iirQ, fs)), nil
	case "highpass":
		return one(design.Highpass(iirCutoff, iirQ, fs)), nil
	case "bandpass":
		return one(design.Bandpass(iirCutoff, iirQ, fs)), nil
	case "notch":
		return one(design.Notch(iirCutoff, iirQ, fs)), nil
	case "allpass":
		return one(design.Allpass(iirCutoff, iirQ, fs)), nil
	case "peak":
		return one(design.Peak(iirCutoff, iirGainDB, iirQ, fs)), nil
	case "lowshelf":
		return one(design.LowShelf(iirCutoff, iirGainDB, iirQ, fs)), nil
	case "highshelf":
		return one(design.HighShelf(iirCutoff, iirGainDB, iirQ, fs)), nil
	case "butter-lp", "butter-hp":
		if err := requirePositive("order", iirOrder); err != nil {
			return nil, err
		}

		if iirKind == "butter-lp" {
			return design.ButterworthLP(iirCutoff, iirOrder, fs), nil
		}

		return design.ButterworthHP(iirCutoff, iirOrder, fs), nil
	default:
		return nil, argErrorf("unknown iir kind %q", iirKind)
	}
}

// responseFloorDB keeps exact response zeros finite in the output.
const responseFloorDB = -300

func runIIR(cmd *cobra.Command) error {
	if iirPoles && iirPoints != 0 {
		return argErrorf("--poles and --response are mutually exclusive")
	}

	if iirPoints < 0 || iirPoints == 1 {
		return argErrorf("--response needs at least 2 points, got %d", iirPoints)
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	coeffs, err := iirDesign(src.sampleRate)
	if err != nil {
		return err
	}

	chain, err := biquad.NewStableChain(coeffs)
	if err != nil {
		return err
	}

	var r *report

	switch {
	case iirPoles:
		r = newReport(cmd, "section", "zero", "re", "im", "radius")
		for i, roots := range chain.Roots() {
			for j, set := range [2][2]complex128{roots.Poles, roots.Zeros} {
				for _, z := range set {
					r.Rows = append(r.Rows, []float64{float64(i), float64(j), real(z), imag(z), cmplx.Abs(z)})
				}
			}
		}
	case iirPoints > 0:
		r = newReport(cmd, "freq", "mag_db", "phase")
		step := src.sampleRate / 2 / float64(iirPoints-1)

		for k := range iirPoints {
			f := float64(k) * step
			db := math.Max(chain.MagnitudeDB(f, src.sampleRate), responseFloorDB)
			r.Rows = append(r.Rows, []float64{f, db, chain.Phase(f, src.sampleRate)})
		}
	default:
		y := make([]float64, len(src.samples))
		if err := chain.ProcessBlockTo(y, src.samples); err != nil {
			return err
		}

		r = newReport(cmd, "y")
		r.addReal(y)
	}

	src.meta(r)
	r.Meta["kind"] = iirKind
	r.Meta["sections"] = chain.NumSections()
	r.Meta["kernel"] = biquad.KernelName()
	r.Meta["cutoff_gain_db"] = math.Max(chain.MagnitudeDB(iirCutoff, src.sampleRate), responseFloorDB)
	r.Meta["max_pole_radius"] = chain.MaxPoleRadius()

	return emit(cmd, r)
}

func runSavgol(cmd *cobra.Command) error {
	mode, err := savgol.ParseMode(savgolMode)
	if err != nil {
		return &argError{err: err}
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	y, err := savgol.Apply(src.samples, savgolWindow, savgolOrder,
		savgol.WithDeriv(savgolDeriv), savgol.WithMode(mode))
	if err != nil {
		return err
	}

	r := newReport(cmd, "y")
	src.meta(r)
	r.Meta["window"] = savgolWindow
	r.Meta["order"] = savgolOrder
	r.Meta["deriv"] = savgolDeriv
	r.Meta["mode"] = mode.String()
	r.addReal(y)

	return emit(cmd, r)
}

func runResample(cmd *cobra.Command) error {
	q, err := resample.ParseQuality(resQuality)
	if err != nil {
		return &argError{err: err}
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	var rs *resample.Resampler
	if resRate > 0 {
		rs, err = resample.NewForRates(src.sampleRate, resRate, resample.WithQuality(q))
	} else {
		rs, err = resample.NewRational(resUp, resDown, resample.WithQuality(q))
	}

	if err != nil {
		return err
	}

	y, err := rs.Process(src.samples)
	if err != nil {
		return err
	}

	if resFlush {
		y = append(y, rs.Flush()...)
	}

	up, down := rs.Ratio()

	r := newReport(cmd, "y")
	src.meta(r)
	r.Meta["up"] = up
	r.Meta["down"] = down
	r.Meta["quality"] = rs.Quality().String()
	r.Meta["taps_per_phase"] = rs.TapsPerPhase()
	r.Meta["group_delay"] = rs.GroupDelay()
	r.Meta["output_rate"] = src.sampleRate * float64(up) / float64(down)
	r.addReal(y)

	return emit(cmd, r)
}
