// SPDX-License-Identifier: EPL-2.0

package watermark

import (
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavmark/audio"
)

// Insert returns a new buffer holding one marker frame per pattern entry
// followed by every frame of buf in order. Each marker frame repeats the
// entry's amplitude at d.BitDepth across all d.Channels channels.
//
// buf is not modified. The result always has buf.NumFrames()+len(p) frames.
func Insert(buf *goaudio.IntBuffer, d audio.Descriptor, p Pattern) *goaudio.IntBuffer {
	channels := max(d.Channels, 1)
	src := samples(buf)

	data := make([]int, 0, len(p)*channels+len(src))
	for _, amp := range p.Amplitudes(d.BitDepth) {
		for range channels {
			data = append(data, amp)
		}
	}
	data = append(data, src...)

	return &goaudio.IntBuffer{
		Format:         d.Format(),
		Data:           data,
		SourceBitDepth: d.BitDepth,
	}
}

// Remove returns a new buffer without the first len(p) frames of buf. The
// leading frames are dropped without checking them against p.
//
// It fails with *InsufficientLengthError when buf holds fewer than len(p)
// frames; buf is never modified.
func Remove(buf *goaudio.IntBuffer, p Pattern) (*goaudio.IntBuffer, error) {
	frames := buf.NumFrames()
	if frames < len(p) {
		return nil, &InsufficientLengthError{Frames: frames, Need: len(p)}
	}

	out := &goaudio.IntBuffer{}
	if buf == nil {
		return out, nil
	}

	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	rest := buf.Data[len(p)*channels:]
	out.Format = buf.Format
	out.Data = make([]int, len(rest))
	out.SourceBitDepth = buf.SourceBitDepth
	copy(out.Data, rest)

	return out, nil
}

func samples(buf *goaudio.IntBuffer) []int {
	if buf == nil {
		return nil
	}

	return buf.Data
}
