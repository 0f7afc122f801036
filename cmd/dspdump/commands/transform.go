package commands

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/dspcore/dsp/czt"
	"github.com/cwbudde/dspcore/dsp/dct"
	"github.com/cwbudde/dspcore/dsp/fft"
	"github.com/cwbudde/dspcore/dsp/hilbert"
)

var (
	fftBackend string
	fftReal    bool
	fftInverse bool

	dctType    int
	dctInverse bool

	cztPoints int
	cztStart  float64
	cztEnd    float64
)

var fftCmd = &cobra.Command{
	Use:   "fft",
	Short: "Discrete Fourier transform of the input (re,im per bin)",
	RunE:  runE(runFFT),
}

var dctCmd = &cobra.Command{
	Use:   "dct",
	Short: "DCT-II, DCT-III or DCT-IV of the input",
	RunE:  runE(runDCT),
}

var cztCmd = &cobra.Command{
	Use:   "czt",
	Short: "Chirp Z-transform zoom over a frequency range (freq,re,im)",
	RunE:  runE(runCZT),
}

var hilbertCmd = &cobra.Command{
	Use:   "hilbert",
	Short: "Analytic signal with envelope, unwrapped phase and instantaneous frequency",
	RunE:  runE(runHilbert),
}

func init() {
	fftCmd.Flags().StringVar(&fftBackend, "backend", "", "FFT backend (default: config or native)")
	fftCmd.Flags().BoolVar(&fftReal, "real", false, "real-input transform returning n/2+1 bins")
	fftCmd.Flags().BoolVar(&fftInverse, "inverse", false, "backward transform, scaled by 1/n")

	dctCmd.Flags().IntVar(&dctType, "type", 2, "DCT type: 2, 3 or 4")
	dctCmd.Flags().BoolVar(&dctInverse, "inverse", false, "apply the inverse transform")

	cztCmd.Flags().IntVar(&cztPoints, "m", 64, "number of output points")
	cztCmd.Flags().Float64Var(&cztStart, "fstart", 0, "first frequency in Hz")
	cztCmd.Flags().Float64Var(&cztEnd, "fend", 0, "end of the range in Hz (0 means fs/2)")

	rootCmd.AddCommand(fftCmd, dctCmd, cztCmd, hilbertCmd)
}

func runFFT(cmd *cobra.Command) error {
	src, err := loadInput()
	if err != nil {
		return err
	}

	var opts []fft.Option
	if fftBackend != "" {
		opts = append(opts, fft.WithBackend(fftBackend))
	}

	r := newReport(cmd, "re", "im")
	src.meta(r)

	n := len(src.samples)

	if fftReal {
		if fftInverse {
			return argErrorf("--real and --inverse are exclusive")
		}

		plan, err := fft.NewPlan(n, fft.R2C, fft.Forward, opts...)
		if err != nil {
			return err
		}

		out := make([]complex128, plan.Bins())
		if err := plan.ExecuteR2C(out, src.samples); err != nil {
			return err
		}

		r.Meta["backend"] = plan.Backend()
		r.addComplex(out)

		return emit(cmd, r)
	}

	dir := fft.Forward
	if fftInverse {
		dir = fft.Backward
	}

	plan, err := fft.NewPlan(n, fft.C2C, dir, opts...)
	if err != nil {
		return err
	}

	out := make([]complex128, n)
	if err := plan.Execute(out, toComplex(src.samples)); err != nil {
		return err
	}

	r.Meta["backend"] = plan.Backend()
	r.Meta["direction"] = dir.String()
	r.addComplex(out)

	return emit(cmd, r)
}

func runDCT(cmd *cobra.Command) error {
	typ := dct.Type(dctType)
	switch typ {
	case dct.TypeII, dct.TypeIII, dct.TypeIV:
	default:
		return argErrorf("--type must be 2, 3 or 4, got %d", dctType)
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	plan, err := dct.NewPlan(len(src.samples), typ)
	if err != nil {
		return err
	}

	out := make([]float64, plan.Len())
	if dctInverse {
		err = plan.Inverse(out, src.samples)
	} else {
		err = plan.Forward(out, src.samples)
	}

	if err != nil {
		return err
	}

	r := newReport(cmd, "x")
	src.meta(r)
	r.Meta["type"] = typ.String()
	r.Meta["inverse"] = dctInverse
	r.addReal(out)

	return emit(cmd, r)
}

func runCZT(cmd *cobra.Command) error {
	if err := requirePositive("m", cztPoints); err != nil {
		return err
	}

	src, err := loadInput()
	if err != nil {
		return err
	}

	end := cztEnd
	if end == 0 {
		end = src.sampleRate / 2
	}

	w, a, err := czt.ParamsForFreqRange(cztStart, end, cztPoints, src.sampleRate)
	if err != nil {
		return err
	}

	plan, err := czt.NewPlan(len(src.samples), cztPoints, w, a)
	if err != nil {
		return err
	}

	out := make([]complex128, plan.OutputLen())
	if err := plan.Execute(out, toComplex(src.samples)); err != nil {
		return err
	}

	r := newReport(cmd, "freq", "re", "im")
	src.meta(r)
	r.Meta["fstart"] = cztStart
	r.Meta["fend"] = end

	for k, f := range czt.Frequencies(cztStart, end, cztPoints) {
		r.Rows = append(r.Rows, []float64{f, real(out[k]), imag(out[k])})
	}

	return emit(cmd, r)
}

func runHilbert(cmd *cobra.Command) error {
	src, err := loadInput()
	if err != nil {
		return err
	}

	z, err := hilbert.Analytic(src.samples)
	if err != nil {
		return err
	}

	env := hilbert.Envelope(z)
	phase := hilbert.InstantaneousPhase(z)
	freq := hilbert.InstantaneousFrequency(phase, src.sampleRate)

	r := newReport(cmd, "re", "im", "envelope", "phase", "freq")
	src.meta(r)

	for i, v := range z {
		r.Rows = append(r.Rows, []float64{real(v), imag(v), env[i], phase[i], freq[i]})
	}

	return emit(cmd, r)
}
