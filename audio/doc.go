// SPDX-License-Identifier: EPL-2.0

// Package audio converts raw PCM payloads to sample buffers and back.
//
// A [Descriptor] names the stream layout (sample rate, bit depth, channel
// count). A [Codec] handles one stored sample width; [Width16] and
// [Width24] are registered in the default [Registry]:
//
//	buf, err := audio.Decode(payload, audio.Descriptor{
//	    SampleRate: 44100, BitDepth: 16, Channels: 2,
//	})
//	...
//	out, err := audio.Encode(buf, d)
//
// Buffers are *goaudio.IntBuffer values holding interleaved samples in
// stream order. Decoding never mixes, reorders or resamples channels, and
// Encode(Decode(p)) reproduces p byte for byte for both widths.
//
// # 24-bit samples
//
// Each 3-byte little-endian sample is placed in the upper three bytes of a
// 32-bit word and arithmetic-shifted right by 8, which sign-extends it.
// Encoding shifts left by 8 and keeps the upper three bytes.
//
// # Validation
//
// A [Validator] checks a descriptor against allow-lists of sample rates
// and widths before any transform runs. Failures are *[DescriptorError]
// values wrapping ErrUnsupportedSampleRate, ErrUnsupportedSampleWidth or
// ErrUnsupportedChannels.
package audio
