package wavio

import (
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/dspcore/dsp/core"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	formatPCM   = 1
	formatFloat = 3
)

// Info describes a WAV stream.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Float      bool
	Frames     int
}

// Validate checks that the stream layout is one this package handles.
func (i Info) Validate() error {
	if i.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate %d: %w", i.SampleRate, core.ErrOutOfRange)
	}

	if i.Channels <= 0 {
		return fmt.Errorf("wavio: %d channels: %w", i.Channels, core.ErrInvalidSize)
	}

	switch {
	case i.Float && i.BitDepth == 32:
	case !i.Float && (i.BitDepth == 16 || i.BitDepth == 24 || i.BitDepth == 32):
	default:
		return fmt.Errorf("wavio: %d-bit float=%v: %w", i.BitDepth, i.Float, core.ErrOutOfRange)
	}

	return nil
}

func openDecoder(path string) (*os.File, *wav.Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("wavio: %w", err)
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("wavio: %s is not a WAV file: %w", path, core.ErrOutOfRange)
	}

	return f, d, nil
}

func infoOf(d *wav.Decoder) Info {
	return Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Float:      d.WavAudioFormat == formatFloat,
	}
}

// ReadInfo returns the format of path without decoding samples.
func ReadInfo(path string) (Info, error) {
	f, d, err := openDecoder(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	if err := d.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("wavio: %w", err)
	}

	info := infoOf(d)
	if err := info.Validate(); err != nil {
		return info, err
	}

	info.Frames = int(d.PCMLen()) / (info.BitDepth / 8 * info.Channels)

	return info, nil
}

// Read decodes path into one slice per channel.
func Read(path string) ([][]float64, Info, error) {
	f, d, err := openDecoder(path)
	if err != nil {
		return nil, Info{}, err
	}
	defer f.Close()

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavio: %w", err)
	}

	info := infoOf(d)
	if err := info.Validate(); err != nil {
		return nil, info, err
	}

	info.Frames = len(buf.Data) / info.Channels
	channels := make([][]float64, info.Channels)

	for ch := range channels {
		channels[ch] = make([]float64, info.Frames)
	}

	scale := 1 / math.Ldexp(1, info.BitDepth-1)

	for i, v := range buf.Data[:info.Frames*info.Channels] {
		var x float64
		if info.Float {
			x = float64(math.Float32frombits(uint32(int32(v))))
		} else {
			x = float64(v) * scale
		}

		channels[i%info.Channels][i/info.Channels] = x
	}

	return channels, info, nil
}

// Write encodes equal-length channels to path using info's sample rate and
// bit depth. info.Channels and info.Frames are taken from channels.
func Write(path string, channels [][]float64, info Info) error {
	if len(channels) == 0 {
		return fmt.Errorf("wavio: no channels: %w", core.ErrInvalidSize)
	}

	frames := len(channels[0])
	for ch, c := range channels {
		if len(c) != frames {
			return fmt.Errorf("wavio: channel %d has %d frames, want %d: %w", ch, len(c), frames, core.ErrInvalidSize)
		}
	}

	info.Channels = len(channels)
	info.Frames = frames

	if err := info.Validate(); err != nil {
		return err
	}

	data := make([]int, frames*info.Channels)

	for i := range data {
		x := channels[i%info.Channels][i/info.Channels]
		if info.Float {
			data[i] = int(int32(math.Float32bits(float32(x))))
		} else {
			data[i] = Quantize(x, info.BitDepth)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	audioFormat := formatPCM
	if info.Float {
		audioFormat = formatFloat
	}

	enc := wav.NewEncoder(f, info.SampleRate, info.BitDepth, info.Channels, audioFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate},
		Data:           data,
		SourceBitDepth: info.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: %w", err)
	}

	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: %w", err)
	}

	return f.Close()
}

// Quantize maps x to a bits-wide signed integer: round(x·2^(bits-1)),
// saturated to the representable range.
func Quantize(x float64, bits int) int {
	full := math.Ldexp(1, bits-1)
	v := math.Round(x * full)

	switch {
	case math.IsNaN(v):
		return 0
	case v > full-1:
		return int(full - 1)
	case v < -full:
		return int(-full)
	default:
		return int(v)
	}
}
