package core

import "math"

// DefaultSampleRate is the rate assumed by processors that are not told
// otherwise.
const DefaultSampleRate = 48000.0

// ProcessorConfig carries the settings shared by sample-rate aware
// processors such as the signal generator.
type ProcessorConfig struct {
	SampleRate float64
}

// ProcessorOption adjusts a ProcessorConfig. Options that receive an
// unusable value leave the config unchanged.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a config at DefaultSampleRate.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: DefaultSampleRate}
}

// WithSampleRate sets the rate in Hz. Non-positive and non-finite rates
// are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 1) {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyProcessorOptions starts from DefaultProcessorConfig and applies
// opts in order. Nil options are skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(&cfg)
	}

	return cfg
}
