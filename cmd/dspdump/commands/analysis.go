package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/cwbudde/dspcore/dsp/dct"
	"github.com/cwbudde/dspcore/dsp/envelope"
	"github.com/cwbudde/dspcore/dsp/mel"
	"github.com/cwbudde/dspcore/dsp/stft"
	"github.com/cwbudde/dspcore/dsp/window"
	freqstats "github.com/cwbudde/dspcore/stats/frequency"
	timestats "github.com/cwbudde/dspcore/stats/time"
)

var (
	stftSize   int
	stftHop    int
	stftWindow string

	mfccMels    int
	mfccCoeffs  int
	mfccFMin    float64
	mfccFMax    float64
	mfccVariant string
	mfccLifter  float64
	mfccDCT     int

	lpcOrder    int
	lpcNFFT     int
	lpcCepstrum bool

	statsWindow string
	statsMaxLag int
)

var stftCmd = &cobra.Command{
	Use:   "stft",
	Short: "Magnitude spectrogram, one frame per row of n/2+1 bins",
	RunE:  runE(runSTFT),
}

var mfccCmd = &cobra.Command{
	Use:   "mfcc",
	Short: "Mel-frequency cepstral coefficients, one frame per row",
	RunE:  runE(runMFCC),
}

var lpcCmd = &cobra.Command{
	Use:   "lpc",
	Short: "Linear prediction coefficients, envelope or real cepstrum",
	RunE:  runE(runLPC),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Time and frequency domain statistics",
	RunE:  runE(runStats),
}

func init() {
	for _, c := range []*cobra.Command{stftCmd, mfccCmd} {
		c.Flags().IntVar(&stftSize, "fft", 512, "frame and FFT size")
		c.Flags().IntVar(&stftHop, "hop", 128, "hop size")
		c.Flags().StringVar(&stftWindow, "window", "hann", "analysis window")
	}

	mfccCmd.Flags().IntVar(&mfccMels, "mels", 26, "number of mel bands")
	mfccCmd.Flags().IntVar(&mfccCoeffs, "coeffs", 13, "number of cepstral coefficients")
	mfccCmd.Flags().Float64Var(&mfccFMin, "fmin", 0, "lowest band edge in Hz")
	mfccCmd.Flags().Float64Var(&mfccFMax, "fmax", 0, "highest band edge in Hz (0 means fs/2)")
	mfccCmd.Flags().StringVar(&mfccVariant, "variant", "htk", "mel scale: htk or slaney")
	mfccCmd.Flags().Float64Var(&mfccLifter, "lifter", 0, "cepstral lifter length (0 disables)")
	mfccCmd.Flags().IntVar(&mfccDCT, "dct", 2, "DCT type: 2, 3 or 4")

	lpcCmd.Flags().IntVar(&lpcOrder, "order", 12, "prediction order")
	lpcCmd.Flags().IntVar(&lpcNFFT, "nfft", 0, "print the LPC envelope on this grid instead of coefficients")
	lpcCmd.Flags().BoolVar(&lpcCepstrum, "cepstrum", false, "print the real cepstrum instead of coefficients")

	statsCmd.Flags().StringVar(&statsWindow, "window", "hann", "window for the spectral statistics")
	statsCmd.Flags().IntVar(&statsMaxLag, "max-lag", 0, "also print the normalized autocorrelation up to this lag")

	rootCmd.AddCommand(stftCmd, mfccCmd, lpcCmd, statsCmd)
}

// halfSpectrogram runs an STFT over src and keeps bins 0..size/2 of each
// frame, squared when power is set.
func halfSpectrogram(src source, power bool) ([]float64, int, int, error) {
	wt, err := window.Parse(stftWindow)
	if err != nil {
		return nil, 0, 0, &argError{err: err}
	}

	s, err := stft.New(stftSize, stftHop, wt)
	if err != nil {
		return nil, 0, 0, err
	}

	mag, frames, err := s.Spectrogram(src.samples)
	if err != nil {
		return nil, 0, 0, err
	}

	bins := stftSize/2 + 1
	out := make([]float64, frames*bins)

	for f := range frames {
		row := mag[f*stftSize : f*stftSize+bins]
		dst := out[f*bins : (f+1)*bins]

		for k, v := range row {
			if power {
				v *= v
			}

			dst[k] = v
		}
	}

	return out, frames, bins, nil
}

func runSTFT(cmd *cobra.Command) error {
	src, err := loadInput()
	if err != nil {
		return err
	}

	spec, frames, bins, err := halfSpectrogram(src, false)
	if err != nil {
		return err
	}

	cols := make([]string, bins)
	for k := range cols {
		cols[k] = fmt.Sprintf("bin_%d", k)
	}

	r := newReport(cmd, cols...)
	src.meta(r)
	r.Meta["frames"] = frames
	r.Meta["hop"] = stftHop
	r.Meta["bin_hz"] = src.sampleRate / float64(stftSize)
	r.addMatrix(spec, bins)

	return emit(cmd, r)
}

func runMFCC(cmd *cobra.Command) error {
	variant, err := mel.ParseVariant(mfccVariant)
	if err != nil {
		return &argError{err: err}
	}

	typ := dct.Type(mfccDCT)
	switch typ {
	case dct.TypeII, dct.TypeIII, dct.TypeIV:
	default:
		return argErrorf("--dct must be 2, 3 or 4, got %d", mfccDCT)
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	m, err := mel.NewMFCC(mel.Config{
		NFFT:       stftSize,
		NMels:      mfccMels,
		NMFCC:      mfccCoeffs,
		SampleRate: src.sampleRate,
		FMin:       mfccFMin,
		FMax:       mfccFMax,
		Variant:    variant,
		DCTType:    typ,
		Lifter:     mfccLifter,
	})
	if err != nil {
		return err
	}

	power, frames, _, err := halfSpectrogram(src, true)
	if err != nil {
		return err
	}

	coeffs, err := m.ProcessFrames(power, frames)
	if err != nil {
		return err
	}

	cols := make([]string, mfccCoeffs)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
	}

	r := newReport(cmd, cols...)
	src.meta(r)
	r.Meta["frames"] = frames
	r.Meta["mels"] = mfccMels
	r.Meta["variant"] = variant.String()
	r.Meta["dct"] = typ.String()
	r.addMatrix(coeffs, mfccCoeffs)

	return emit(cmd, r)
}

func runLPC(cmd *cobra.Command) error {
	if lpcCepstrum && lpcNFFT > 0 {
		return argErrorf("--cepstrum and --nfft are exclusive")
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	if lpcCepstrum {
		c, err := envelope.RealCepstrum(src.samples)
		if err != nil {
			return err
		}

		r := newReport(cmd, "c")
		src.meta(r)
		r.addReal(c)

		return emit(cmd, r)
	}

	a, e, err := envelope.LPC(src.samples, lpcOrder)
	if err != nil {
		return err
	}

	r := newReport(cmd, "a")
	src.meta(r)
	r.Meta["order"] = lpcOrder
	r.Meta["prediction_error"] = e

	if lpcNFFT > 0 {
		env, err := envelope.LPCSpectrum(a, math.Sqrt(math.Max(e, 0)), lpcNFFT)
		if err != nil {
			return err
		}

		r.Columns = []string{"envelope"}
		r.addReal(env)

		return emit(cmd, r)
	}

	r.addReal(a)

	return emit(cmd, r)
}

func runStats(cmd *cobra.Command) error {
	wt, err := window.Parse(statsWindow)
	if err != nil {
		return &argError{err: err}
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	ts := timestats.Calculate(src.samples)

	fs, err := freqstats.FromSignal(src.samples, src.sampleRate, wt)
	if err != nil {
		return err
	}

	r := newReport(cmd, "lag", "r")
	src.meta(r)
	r.Meta["dc"] = ts.DC
	r.Meta["rms"] = ts.RMS
	r.Meta["peak"] = ts.Peak
	r.Meta["min"] = ts.Min
	r.Meta["max"] = ts.Max
	r.Meta["argmin"] = timestats.ArgMin(src.samples)
	r.Meta["argmax"] = timestats.ArgMax(src.samples)
	r.Meta["crest_factor"] = ts.CrestFactor
	r.Meta["variance"] = ts.Variance
	r.Meta["skewness"] = ts.Skewness
	r.Meta["kurtosis"] = ts.Kurtosis
	r.Meta["zero_crossings"] = ts.ZeroCrossings
	r.Meta["zero_crossing_rate"] = ts.ZeroCrossingRate
	r.Meta["spectral_centroid"] = fs.Centroid
	r.Meta["spectral_spread"] = fs.Spread
	r.Meta["spectral_flatness"] = fs.Flatness
	r.Meta["spectral_rolloff"] = fs.Rolloff
	r.Meta["spectral_peak_bin"] = fs.MaxBin

	if statsMaxLag > 0 {
		ac, err := timestats.NormalizedAutocorrelation(src.samples, statsMaxLag)
		if err != nil {
			return err
		}

		for k, v := range ac {
			r.Rows = append(r.Rows, []float64{float64(k), v})
		}
	}

	return emit(cmd, r)
}
