// SPDX-License-Identifier: EPL-2.0

package wavmark

import (
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavmark/audio"
	"github.com/ik5/wavmark/formats/wav"
	"github.com/ik5/wavmark/watermark"
)

// Options configures a Marker. Zero values fall back to the defaults.
type Options struct {
	// AllowedSampleRates in Hz.
	AllowedSampleRates []int
	// AllowedSampleWidths in bytes.
	AllowedSampleWidths []int
	// Pattern to embed. Defaults to watermark.DefaultPattern.
	Pattern watermark.Pattern
}

// Marker inserts and removes the watermark. It is immutable once built.
type Marker struct {
	validator *audio.Validator
	codecs    *audio.Registry
	pattern   watermark.Pattern
}

// New builds a Marker from opts. A custom pattern must be non-empty with
// every level below 0 dB; otherwise New returns the validation error.
func New(opts Options) (*Marker, error) {
	pattern := opts.Pattern
	if len(pattern) == 0 {
		pattern = watermark.DefaultPattern
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}

	return &Marker{
		validator: audio.NewValidator(opts.AllowedSampleRates, opts.AllowedSampleWidths),
		codecs:    audio.DefaultRegistry(),
		pattern:   pattern.Clone(),
	}, nil
}

// Pattern returns a copy of the configured pattern.
func (m *Marker) Pattern() watermark.Pattern { return m.pattern.Clone() }

// Validator returns the descriptor validator in use.
func (m *Marker) Validator() *audio.Validator { return m.validator }

// Insert returns payload with the watermark frames prepended.
func (m *Marker) Insert(payload []byte, d audio.Descriptor) ([]byte, error) {
	buf, err := m.decode(payload, d)
	if err != nil {
		return nil, err
	}

	return m.codecs.Encode(watermark.Insert(buf, d, m.pattern), d)
}

// Remove returns payload without its first len(pattern) frames.
func (m *Marker) Remove(payload []byte, d audio.Descriptor) ([]byte, error) {
	buf, err := m.decode(payload, d)
	if err != nil {
		return nil, err
	}

	out, err := watermark.Remove(buf, m.pattern)
	if err != nil {
		return nil, err
	}

	return m.codecs.Encode(out, d)
}

// ClipDecoder reads an audio container into a little-endian PCM clip.
// wav.Decoder and aiff.Decoder implement it.
type ClipDecoder interface {
	Decode(r io.Reader) (*wav.Clip, error)
}

// InsertWAV reads a WAV file from r and writes the watermarked file to w.
func (m *Marker) InsertWAV(r io.Reader, w io.Writer) error {
	return m.InsertFrom(wav.Decoder{}, r, w)
}

// RemoveWAV reads a watermarked WAV file from r and writes it without the
// watermark to w.
func (m *Marker) RemoveWAV(r io.Reader, w io.Writer) error {
	return m.RemoveFrom(wav.Decoder{}, r, w)
}

// InsertFrom is InsertWAV for any container dec understands. The output is
// always WAV.
func (m *Marker) InsertFrom(dec ClipDecoder, r io.Reader, w io.Writer) error {
	return m.transform(dec, r, w, m.Insert)
}

// RemoveFrom is RemoveWAV for any container dec understands. The output is
// always WAV.
func (m *Marker) RemoveFrom(dec ClipDecoder, r io.Reader, w io.Writer) error {
	return m.transform(dec, r, w, m.Remove)
}

func (m *Marker) decode(payload []byte, d audio.Descriptor) (*goaudio.IntBuffer, error) {
	if err := m.validator.Validate(d); err != nil {
		return nil, err
	}

	return m.codecs.Decode(payload, d)
}

func (m *Marker) transform(dec ClipDecoder, r io.Reader, w io.Writer, fn func([]byte, audio.Descriptor) ([]byte, error)) error {
	clip, err := dec.Decode(r)
	if err != nil {
		return err
	}

	payload, err := fn(clip.Payload, clip.Descriptor)
	if err != nil {
		return err
	}

	return wav.Write(w, &wav.Clip{Descriptor: clip.Descriptor, Payload: payload})
}
