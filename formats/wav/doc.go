// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes the RIFF/WAVE container around raw PCM.
//
// The package never interprets samples. Decoding yields a Clip holding the
// stream descriptor (sample rate, bit depth, channel count) and the data
// chunk bytes exactly as stored; Write puts a canonical 44-byte header in
// front of a payload. Sample conversion is the job of the audio package.
//
// # Decoding WAV Files
//
// Header parsing is done with github.com/go-audio/wav, so files carrying
// LIST or other auxiliary chunks before the data chunk are accepted:
//
//	clip, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(clip.Descriptor.SampleRate, clip.Frames())
//
// Only integer PCM (format tag 1, or WAVE_FORMAT_EXTENSIBLE) is accepted.
//
// # Writing WAV Files
//
//	err := wav.Write(out, clip)
//
// Odd-sized payloads (mono 24-bit with an odd frame count) get the RIFF pad
// byte; the data chunk size excludes it.
//
// # Error Handling
//
// Malformed input is reported with ErrNotWavFile, ErrOnlyPCMSupported,
// ErrUnsupportedWavChunks or ErrTruncatedData. IsFormatError groups them
// together with audio.ErrTruncatedPayload.
package wav
