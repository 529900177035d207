// SPDX-License-Identifier: EPL-2.0

// Package aiff imports AIFF files for watermarking.
//
// AIFF stores big-endian PCM. The decoder (github.com/go-audio/aiff) yields
// integer samples which are re-encoded through the audio width codecs, so
// the returned Clip carries a little-endian payload that the wav package
// can write unchanged:
//
//	clip, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // ErrNotAiffFile, ErrUnsupportedAiffLayout or *audio.DescriptorError
//	}
//	err = wav.Write(out, clip)
//
// Only 16-bit and 24-bit files can be imported. AIFF-C compressed variants
// are rejected by the underlying decoder.
package aiff
