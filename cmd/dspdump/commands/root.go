package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fpenv"
	"github.com/cwbudde/dspcore/internal/config"
)

var (
	// Global flags
	cfgFile    string
	verbose    bool
	format     string
	seed       int64
	length     int
	inputFile  string
	signalKind string
	toneHz     float64
	sampleRate float64
	ftz        bool

	// Resolved at PersistentPreRunE
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "dspdump",
	Short: "Dump the output of dsp operations",
	Long: `dspdump feeds a seeded test signal, or the first channel of a WAV file,
into one dsp operation and prints the numeric result.

Examples:
  dspdump fft --n 16 --signal impulse
  dspdump --format csv stft --fft 512 --hop 128 --input speech.wav
  dspdump --config dsp.yaml mfcc --mels 40 --coeffs 13
  dspdump window --type kaiser --param 8.6 --n 64`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return argErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		_ = cmd.Usage()
		return argErrorf("a command is required")
	},
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Command returns the root cobra command.
func Command() *cobra.Command {
	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&format, "format", string(formatText), "output format: text, csv, json, yaml or msgpack")
	pf.Int64Var(&seed, "seed", 0, "noise seed (0 uses the config seed)")
	pf.IntVar(&length, "n", 1024, "generated signal length")
	pf.StringVar(&inputFile, "input", "", "WAV file to use instead of a generated signal")
	pf.StringVar(&signalKind, "signal", "noise", "generated signal: noise, sine, impulse or sweep")
	pf.Float64Var(&toneHz, "freq", 1000, "sine frequency in Hz")
	pf.Float64Var(&sampleRate, "rate", 0, "sample rate of the generated signal (0 uses the config)")
	pf.BoolVar(&ftz, "ftz", false, "flush denormals to zero while processing")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &argError{err: err}
	})
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func setup(cmd *cobra.Command, _ []string) error {
	if _, err := parseFormat(format); err != nil {
		return err
	}

	settings = config.Default()

	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return &argError{err: err}
		}

		settings = loaded
		slog.Debug("loaded config", "path", cfgFile, "backend", settings.FFTBackend, "nan_policy", settings.NaNPolicy)
	}

	if seed != 0 {
		settings.Seed = seed
	}

	if sampleRate != 0 {
		settings.SampleRate = sampleRate
	}

	if ftz {
		settings.FlushDenormals = true
	}

	if err := settings.Apply(); err != nil {
		return &argError{err: err}
	}

	slog.Debug("running", "command", cmd.Name(), "seed", settings.Seed, "rate", settings.SampleRate)

	return nil
}

// runE adapts a command body to cobra, running it with FTZ/DAZ enabled
// when the config asks for it.
func runE(fn func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if !settings.FlushDenormals {
			return fn(cmd)
		}

		var err error
		fpenv.Do(func() {
			slog.Debug("flush-to-zero", "supported", fpenv.Supported(), "enabled", fpenv.Enabled())
			err = fn(cmd)
		})

		return err
	}
}

// argError marks a failure caused by the command line rather than by
// processing.
type argError struct {
	err error
}

func (e *argError) Error() string { return e.err.Error() }

func (e *argError) Unwrap() error { return e.err }

func argErrorf(format string, args ...any) error {
	return &argError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an Execute error onto the process exit status: 0 on
// success, 2 for argument errors and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var ae *argError
	if errors.As(err, &ae) {
		return 2
	}

	switch core.StatusOf(err) {
	case core.StatusOutOfRange, core.StatusInvalidSize:
		return 2
	default:
		return 1
	}
}
