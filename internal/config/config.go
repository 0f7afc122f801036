package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/cwbudde/dspcore/dsp/fft"
)

// DefaultSeed drives the generator when neither the file nor a flag sets one.
const DefaultSeed int64 = 1

// Config is the on-disk configuration.
type Config struct {
	FFTBackend     string  `yaml:"fft_backend"`
	NaNPolicy      string  `yaml:"nan_policy"`
	FlushDenormals bool    `yaml:"flush_denormals"`
	SampleRate     float64 `yaml:"sample_rate"`
	Seed           int64   `yaml:"seed"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		FFTBackend: fft.DefaultBackend(),
		NaNPolicy:  core.NaNPropagate.String(),
		SampleRate: core.DefaultSampleRate,
		Seed:       DefaultSeed,
	}
}

// Load reads path and overlays it on Default. Fields missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	return cfg.Validate()
}

// Validate checks every field against the values the dsp packages accept.
func (c Config) Validate() error {
	if c.FFTBackend != "" && !slices.Contains(fft.Backends(), c.FFTBackend) {
		return fmt.Errorf("config: unknown fft_backend %q: %w", c.FFTBackend, core.ErrOutOfRange)
	}

	if c.NaNPolicy != "" {
		if _, err := core.ParseNaNPolicy(c.NaNPolicy); err != nil {
			return fmt.Errorf("config: nan_policy: %w", err)
		}
	}

	if c.SampleRate < 0 || !core.IsFinite(c.SampleRate) {
		return fmt.Errorf("config: sample_rate %v: %w", c.SampleRate, core.ErrOutOfRange)
	}

	return nil
}

// Apply installs the FFT backend and NaN policy as process-wide defaults.
// FlushDenormals is thread-local and is honored by callers through
// fpenv.Do.
func (c Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.FFTBackend != "" {
		if err := fft.SetDefaultBackend(c.FFTBackend); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	if c.NaNPolicy != "" {
		p, err := core.ParseNaNPolicy(c.NaNPolicy)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		core.SetDefaultNaNPolicy(p)
	}

	return nil
}

// ProcessorOptions maps the file onto core processor options.
func (c Config) ProcessorOptions() []core.ProcessorOption {
	if c.SampleRate <= 0 {
		return nil
	}

	return []core.ProcessorOption{core.WithSampleRate(c.SampleRate)}
}
