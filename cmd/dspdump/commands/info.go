package commands

import (
	"runtime"

	"github.com/spf13/cobra"
	simdcpu "github.com/tphakala/simd/cpu"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
	"github.com/cwbudde/dspcore/dsp/filter/biquad"
	"github.com/cwbudde/dspcore/dsp/fpenv"
	"github.com/cwbudde/dspcore/dsp/wavio"
	"github.com/cwbudde/dspcore/internal/cpu"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "FFT backends, CPU features and process-wide defaults",
	RunE:  runE(runInfo),
}

var wavinfoCmd = &cobra.Command{
	Use:   "wavinfo",
	Short: "Header of the --input WAV file",
	RunE:  runE(runWavinfo),
}

func init() {
	rootCmd.AddCommand(infoCmd, wavinfoCmd)
}

func runInfo(cmd *cobra.Command) error {
	f := cpu.DetectFeatures()

	r := newReport(cmd)
	r.Meta["fft_backends"] = fft.Backends()
	r.Meta["fft_default_backend"] = fft.DefaultBackend()
	r.Meta["nan_policy"] = core.DefaultNaNPolicy().String()
	r.Meta["sample_rate"] = settings.SampleRate
	r.Meta["seed"] = settings.Seed
	r.Meta["arch"] = runtime.GOARCH
	r.Meta["simd_level"] = f.Level().String()
	r.Meta["cpu_features"] = f.String()
	r.Meta["simd_kernels"] = simdcpu.Info()
	r.Meta["biquad_kernel"] = biquad.KernelName()
	r.Meta["ftz_supported"] = fpenv.Supported()
	r.Meta["ftz_enabled"] = fpenv.Enabled()

	return emit(cmd, r)
}

func runWavinfo(cmd *cobra.Command) error {
	if inputFile == "" {
		return argErrorf("wavinfo needs --input")
	}

	info, err := wavio.ReadInfo(inputFile)
	if err != nil {
		return err
	}

	r := newReport(cmd)
	r.Meta["path"] = inputFile
	r.Meta["sample_rate"] = info.SampleRate
	r.Meta["channels"] = info.Channels
	r.Meta["bit_depth"] = info.BitDepth
	r.Meta["float"] = info.Float
	r.Meta["frames"] = info.Frames
	r.Meta["seconds"] = float64(info.Frames) / float64(info.SampleRate)

	return emit(cmd, r)
}
