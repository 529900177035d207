// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/wavmark/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Clip is a WAV file split into its stream descriptor and raw PCM payload.
type Clip struct {
	Descriptor audio.Descriptor
	Payload    []byte
}

// Frames is the number of whole frames in the payload.
func (c *Clip) Frames() int {
	size := c.Descriptor.FrameSize()
	if size == 0 {
		return 0
	}

	return len(c.Payload) / size
}

type Decoder struct{}

// Decode reads a complete RIFF/WAVE stream and returns its descriptor and
// data chunk. Chunks other than fmt and data are skipped.
func (Decoder) Decode(r io.Reader) (*Clip, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	d := audio.Descriptor{
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
	}

	// go-audio counts the pad byte of odd-sized chunks in PCMSize.
	want := dec.PCMSize
	if fs := d.FrameSize(); fs > 0 && fs%2 == 1 && want%fs == 1 {
		want--
	}

	payload, err := io.ReadAll(io.LimitReader(dec.PCMChunk.R, int64(dec.PCMSize)))
	if err != nil {
		return nil, fmt.Errorf("reading wav data chunk: %w", err)
	}
	if len(payload) < want {
		return nil, fmt.Errorf("%w: have %d of %d bytes", ErrTruncatedData, len(payload), want)
	}

	return &Clip{Descriptor: d, Payload: payload[:want]}, nil
}
