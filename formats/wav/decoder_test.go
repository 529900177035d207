// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/wavmark/audio"
	"github.com/ik5/wavmark/internal/audiotest"
)

// nonSeeker hides Seek so Decode has to buffer the stream itself
type nonSeeker struct {
	r io.Reader
}

func (n nonSeeker) Read(p []byte) (int, error) { return n.r.Read(p) }

func TestDecoder_ValidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		bits     int
		channels int
		payload  []byte
		frames   int
	}{
		{"44.1k 16-bit mono", 44100, 16, 1, audiotest.PCM16(0, 100, -100, 200), 4},
		{"44.1k 16-bit stereo", 44100, 16, 2, audiotest.PCM16(100, 200, 300, 400), 2},
		{"48k 24-bit mono", 48000, 24, 1, audiotest.PCM24(1, -1, 8388607), 3},
		{"48k 24-bit stereo", 48000, 24, 2, audiotest.PCM24(1, 1, -5, -5), 2},
		{"empty data chunk", 44100, 16, 1, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := audiotest.WAV(tt.rate, tt.bits, tt.channels, tt.payload)

			clip, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v, want nil", err)
			}

			want := audio.Descriptor{SampleRate: tt.rate, BitDepth: tt.bits, Channels: tt.channels}
			if clip.Descriptor != want {
				t.Errorf("Descriptor = %+v, want %+v", clip.Descriptor, want)
			}
			if !bytes.Equal(clip.Payload, tt.payload) {
				t.Errorf("Payload = %x, want %x", clip.Payload, tt.payload)
			}
			if clip.Frames() != tt.frames {
				t.Errorf("Frames() = %d, want %d", clip.Frames(), tt.frames)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	payload := audiotest.PCM16(1, 2, 3)
	data := audiotest.WAV(44100, 16, 1, payload)

	clip, err := Decoder{}.Decode(nonSeeker{r: bytes.NewReader(data)})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(clip.Payload, payload) {
		t.Errorf("Payload = %x, want %x", clip.Payload, payload)
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("NOT A WAV FILE DATA")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
			}
			if !IsFormatError(err) {
				t.Error("IsFormatError() = false")
			}
		})
	}
}

func TestDecoder_FloatFormatRejected(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(44100, 32, 1, make([]byte, 8))
	binary.LittleEndian.PutUint16(data[20:22], 3) // IEEE float

	_, err := Decoder{}.Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrOnlyPCMSupported) {
		t.Errorf("Decode() error = %v, want ErrOnlyPCMSupported", err)
	}
}

func TestDecoder_TruncatedData(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(44100, 16, 1, audiotest.PCM16(1, 2, 3, 4))
	data = data[:len(data)-3]

	_, err := Decoder{}.Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrTruncatedData) {
		t.Errorf("Decode() error = %v, want ErrTruncatedData", err)
	}
}

func TestDecoder_SkipsListChunk(t *testing.T) {
	t.Parallel()

	payload := audiotest.PCM16(7, 8, 9, 10)
	canonical := audiotest.WAV(44100, 16, 2, payload)

	// RIFF header + fmt chunk, then an unrelated chunk, then data
	list := []byte("junk\x04\x00\x00\x00abcd")
	data := make([]byte, 0, len(canonical)+len(list))
	data = append(data, canonical[:36]...)
	data = append(data, list...)
	data = append(data, canonical[36:]...)
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(data)-8))

	clip, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(clip.Payload, payload) {
		t.Errorf("Payload = %x, want %x", clip.Payload, payload)
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	data := audiotest.WAV(44100, 16, 2, audiotest.Silence(44100, 2, 2))

	b.ReportAllocs()

	for b.Loop() {
		_, _ = Decoder{}.Decode(bytes.NewReader(data))
	}
}
