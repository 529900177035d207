// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"slices"
	"sync"

	goaudio "github.com/go-audio/audio"
)

// Descriptor describes a PCM stream. It is immutable for the lifetime of
// one operation.
type Descriptor struct {
	// SampleRate of the PCM stream in Hz.
	SampleRate int
	// BitDepth of a single sample (16 or 24).
	BitDepth int
	// Channels count (1=mono, 2=stereo).
	Channels int
}

// Width is the stored size of one sample in bytes.
func (d Descriptor) Width() int { return d.BitDepth / 8 }

// FrameSize is the stored size of one frame in bytes.
func (d Descriptor) FrameSize() int { return d.Width() * d.Channels }

// Format returns the go-audio format matching d.
func (d Descriptor) Format() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: d.Channels,
		SampleRate:  d.SampleRate,
	}
}

// Codec converts between raw little-endian PCM bytes and an interleaved
// sample buffer for one sample width.
type Codec interface {
	// Width of one stored sample in bytes.
	Width() int
	// BitDepth of one sample.
	BitDepth() int
	// Decode groups payload into samples. The returned buffer carries format.
	Decode(payload []byte, format *goaudio.Format) (*goaudio.IntBuffer, error)
	// Encode flattens buf back into interleaved little-endian bytes.
	Encode(buf *goaudio.IntBuffer) []byte
}

// Registry for codecs by sample width in bytes.
type Registry struct {
	codecs map[int]Codec

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[int]Codec),
		mtx:    &sync.Mutex{},
	}
}

// DefaultRegistry returns a registry holding Width16 and Width24.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Width16{})
	r.Register(Width24{})

	return r
}

func (r *Registry) Register(c Codec) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[c.Width()] = c
}

func (r *Registry) Get(width int) (Codec, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[width]
	return c, ok
}

// Widths lists the registered sample widths in ascending order.
func (r *Registry) Widths() []int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	widths := make([]int, 0, len(r.codecs))
	for w := range r.codecs {
		widths = append(widths, w)
	}

	slices.Sort(widths)

	return widths
}

// Lookup returns the codec for d, or a *DescriptorError when no codec is
// registered for its width.
func (r *Registry) Lookup(d Descriptor) (Codec, error) {
	if d.BitDepth%8 == 0 {
		if c, ok := r.Get(d.Width()); ok {
			return c, nil
		}
	}

	return nil, &DescriptorError{
		Field:   "sample width",
		Value:   d.Width(),
		Allowed: r.Widths(),
		Err:     ErrUnsupportedSampleWidth,
	}
}

// Decode converts payload into a sample buffer for d.
func (r *Registry) Decode(payload []byte, d Descriptor) (*goaudio.IntBuffer, error) {
	c, err := r.Lookup(d)
	if err != nil {
		return nil, err
	}

	return c.Decode(payload, d.Format())
}

// Encode converts buf back into a PCM payload for d.
func (r *Registry) Encode(buf *goaudio.IntBuffer, d Descriptor) ([]byte, error) {
	c, err := r.Lookup(d)
	if err != nil {
		return nil, err
	}

	if d.Channels < 1 || len(buf.Data)%d.Channels != 0 {
		return nil, ErrPartialFrame
	}

	return c.Encode(buf), nil
}

var defaultRegistry = DefaultRegistry()

// Decode converts payload into a sample buffer using the built-in codecs.
func Decode(payload []byte, d Descriptor) (*goaudio.IntBuffer, error) {
	return defaultRegistry.Decode(payload, d)
}

// Encode converts buf into a PCM payload using the built-in codecs.
func Encode(buf *goaudio.IntBuffer, d Descriptor) ([]byte, error) {
	return defaultRegistry.Encode(buf, d)
}
