// Package config loads the YAML file the dump tool reads at startup and
// applies it to the process-wide defaults of the dsp packages.
//
//	fft_backend: algofft
//	nan_policy: zero
//	flush_denormals: true
//	sample_rate: 44100
//	seed: 7
package config
