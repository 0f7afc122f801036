package stft_test

import (
	"fmt"

	"github.com/cwbudde/dspcore/dsp/stft"
	"github.com/cwbudde/dspcore/dsp/window"
)

func ExampleSTFT_Spectrogram() {
	s, err := stft.New(16, 4, window.TypeHann)
	if err != nil {
		panic(err)
	}

	_, frames, err := s.Spectrogram(make([]float64, 40))
	if err != nil {
		panic(err)
	}

	fmt.Println(frames)

	// Output:
	// 7
}
