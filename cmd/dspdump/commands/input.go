package commands

import (
	"log/slog"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/signal"
	"github.com/cwbudde/dspcore/dsp/wavio"
)

// source is the signal a command operates on.
type source struct {
	samples    []float64
	sampleRate float64
	origin     string
}

func (s source) meta(r *report) {
	r.Meta["input"] = s.origin
	r.Meta["samples"] = len(s.samples)
	r.Meta["sample_rate"] = s.sampleRate
}

// loadInput returns the first channel of --input, or a generated signal
// of --n samples.
func loadInput() (source, error) {
	if inputFile != "" {
		chans, info, err := wavio.Read(inputFile)
		if err != nil {
			return source{}, err
		}

		slog.Debug("read wav", "path", inputFile, "channels", info.Channels, "frames", info.Frames, "bits", info.BitDepth)

		return source{
			samples:    chans[0],
			sampleRate: float64(info.SampleRate),
			origin:     inputFile,
		}, nil
	}

	gen := signal.NewGeneratorWithOptions(settings.ProcessorOptions(), signal.WithSeed(settings.Seed))
	fs := gen.Config().SampleRate

	var (
		x   []float64
		err error
	)

	switch signalKind {
	case "noise":
		x, err = gen.WhiteNoise(1, length)
	case "sine":
		x, err = gen.Sine(toneHz, 1, length)
	case "impulse":
		x, err = gen.Impulse(1, length, 0)
	case "sweep":
		x, err = gen.LogSweep(20, 0.45*fs, 1, length)
	default:
		return source{}, argErrorf("unknown signal %q", signalKind)
	}

	if err != nil {
		return source{}, err
	}

	return source{samples: x, sampleRate: fs, origin: signalKind}, nil
}

// requirePositive rejects non-positive integer flags as argument errors.
func requirePositive(name string, v int) error {
	if v <= 0 {
		return argErrorf("--%s must be positive, got %d", name, v)
	}

	return nil
}

func toComplex(x []float64) []complex128 {
	z := make([]complex128, len(x))
	core.RealToComplex(z, x)

	return z
}
