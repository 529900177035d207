// SPDX-License-Identifier: EPL-2.0

// Package wavmark embeds and strips an inaudible watermark at the head of
// uncompressed PCM audio.
//
// The watermark is a short run of synthetic frames placed before the first
// original frame. Each marker frame carries one entry of a decibel pattern,
// converted to an integer amplitude for the stream's bit depth and repeated
// on every channel. Removing the watermark drops exactly that many frames.
//
// # Supported Formats
//
// Sample rates and sample widths come from an allow-list (by default
// 44.1 kHz and 48 kHz, 16-bit and 24-bit). Mono and stereo are supported.
// Anything else is rejected with an *audio.DescriptorError before any
// sample is decoded.
//
// # Quick Start
//
//	m, err := wavmark.New(wavmark.Options{})
//
//	// Raw PCM payload plus its descriptor
//	out, err := m.Insert(payload, audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 2})
//
//	// Whole WAV files
//	err = m.InsertWAV(in, out)
//	err = m.RemoveWAV(in, out)
//
//	// Other containers are decoded first and always written as WAV
//	err = m.InsertFrom(aiff.Decoder{}, in, out)
//
// # Pipeline
//
// Every call runs the same linear pipeline and stops at the first error:
//
//	validate -> decode -> insert | remove -> encode
//
// # Subpackages
//
//   - audio: descriptor, 16/24-bit sample codecs and the validator
//   - watermark: patterns and the Insert/Remove transforms
//   - formats/wav: RIFF/WAVE container reading and writing
//   - formats/aiff: AIFF import
//   - utils: decibel to amplitude conversion
//
// A Marker holds only read-only configuration, so one value can serve many
// goroutines at once.
package wavmark
