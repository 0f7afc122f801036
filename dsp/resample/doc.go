// Package resample provides streaming rational sample-rate conversion.
//
// Output sample k sits at input position k·down/up. The windowed-sinc
// qualities run a Kaiser-windowed polyphase FIR; QualityLinear interpolates
// between neighbouring inputs. A Resampler carries its filter history and
// fractional phase between Process calls, so splitting a stream into blocks
// does not change the output. Flush drains the remaining samples at the
// end of a stream.
//
// Default quality/performance matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//	QualityLinear   2            none
//
// Common workflows:
//   - NewRational(up, down, opts...)
//   - NewForRates(inRate, outRate, opts...)
//   - Resample(input, up, down, opts...)
//   - Upsample2x / Downsample2x convenience wrappers
package resample
