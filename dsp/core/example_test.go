package core_test

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(44100))
	fallback := core.ApplyProcessorOptions(core.WithSampleRate(-1))

	fmt.Printf("%.0f %.0f\n", cfg.SampleRate, fallback.SampleRate)

	// Output:
	// 44100 48000
}

func ExampleStatusOf() {
	err := fmt.Errorf("fir: %d taps: %w", 0, core.ErrInvalidSize)

	fmt.Println(core.StatusOf(err).String(), core.StatusOf(nil).String())

	// Output:
	// invalid size ok
}
