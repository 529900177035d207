// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavmark/audio"
	"github.com/ik5/wavmark/formats/wav"
)

// readFrames is the number of frames pulled from the decoder per call.
const readFrames = 4096

// pcmReader is the part of aiff.Decoder used after the header is parsed.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

// Decode reads an AIFF file and returns its samples as a little-endian PCM
// Clip, ready to be watermarked and written as WAV.
func (Decoder) Decode(r io.Reader) (*wav.Clip, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	d := audio.Descriptor{
		SampleRate: dec.SampleRate,
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
	}

	return decodeClip(dec, d)
}

func decodeClip(src pcmReader, d audio.Descriptor) (*wav.Clip, error) {
	format := src.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	samples, err := readAll(src, format)
	if err != nil {
		return nil, err
	}

	// Re-encode through the width codec so the payload is little-endian.
	payload, err := audio.Encode(&goaudio.IntBuffer{Data: samples, Format: d.Format()}, d)
	if err != nil {
		if errors.Is(err, audio.ErrPartialFrame) {
			return nil, fmt.Errorf("%w: %w", audio.ErrTruncatedPayload, err)
		}
		return nil, err
	}

	return &wav.Clip{Descriptor: d, Payload: payload}, nil
}

func readAll(src pcmReader, format *goaudio.Format) ([]int, error) {
	chunk := &goaudio.IntBuffer{
		Data:   make([]int, readFrames*format.NumChannels),
		Format: format,
	}

	var samples []int
	for {
		n, err := src.PCMBuffer(chunk)
		samples = append(samples, chunk.Data[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return samples, nil
			}
			return nil, fmt.Errorf("reading aiff samples: %w", err)
		}
		if n == 0 {
			return samples, nil
		}
	}
}
