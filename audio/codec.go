// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"

	goaudio "github.com/go-audio/audio"
)

// Width16 is the codec for signed 16-bit little-endian PCM.
type Width16 struct{}

func (Width16) Width() int    { return 2 }
func (Width16) BitDepth() int { return 16 }

func (Width16) Decode(payload []byte, format *goaudio.Format) (*goaudio.IntBuffer, error) {
	if err := checkPayload(len(payload), 2, format); err != nil {
		return nil, err
	}

	data := make([]int, len(payload)/2)
	for i := range data {
		data[i] = int(int16(binary.LittleEndian.Uint16(payload[2*i : 2*i+2])))
	}

	return &goaudio.IntBuffer{Format: format, Data: data, SourceBitDepth: 16}, nil
}

func (Width16) Encode(buf *goaudio.IntBuffer) []byte {
	out := make([]byte, len(buf.Data)*2)
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint16(out[2*i:2*i+2], uint16(int16(v)))
	}

	return out
}

// Width24 is the codec for signed 24-bit little-endian PCM packed in three
// bytes per sample.
//
// Decode places the three stored bytes in the upper three bytes of a 32-bit
// word and shifts right arithmetically by 8, which sign-extends the sample.
// Encode shifts left by 8 and keeps bytes 1..3 of the little-endian word, so
// Encode(Decode(p)) == p for every well-formed payload.
type Width24 struct{}

func (Width24) Width() int    { return 3 }
func (Width24) BitDepth() int { return 24 }

func (Width24) Decode(payload []byte, format *goaudio.Format) (*goaudio.IntBuffer, error) {
	if err := checkPayload(len(payload), 3, format); err != nil {
		return nil, err
	}

	var word [4]byte
	data := make([]int, len(payload)/3)
	for i := range data {
		copy(word[1:], payload[3*i:3*i+3])
		data[i] = int(int32(binary.LittleEndian.Uint32(word[:])) >> 8)
	}

	return &goaudio.IntBuffer{Format: format, Data: data, SourceBitDepth: 24}, nil
}

func (Width24) Encode(buf *goaudio.IntBuffer) []byte {
	var word [4]byte
	out := make([]byte, len(buf.Data)*3)
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint32(word[:], uint32(int32(v)<<8))
		copy(out[3*i:3*i+3], word[1:])
	}

	return out
}

func checkPayload(size, width int, format *goaudio.Format) error {
	if format == nil || format.NumChannels < 1 {
		return ErrUnsupportedChannels
	}

	if size%(width*format.NumChannels) != 0 {
		return ErrTruncatedPayload
	}

	return nil
}
