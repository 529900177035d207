// SPDX-License-Identifier: EPL-2.0

package watermark

import (
	"errors"
	"slices"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavmark/audio"
	"github.com/ik5/wavmark/internal/audiotest"
	"github.com/ik5/wavmark/utils"
)

func newBuffer(t *testing.T, d audio.Descriptor, samples []int) *goaudio.IntBuffer {
	t.Helper()

	return &goaudio.IntBuffer{Format: d.Format(), Data: slices.Clone(samples), SourceBitDepth: d.BitDepth}
}

// Insert a 16-entry pattern into 1000 silent mono frames.
func TestInsert_MonoSilence(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 1}
	buf, err := audio.Decode(audiotest.Silence(1000, 1, 2), d)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	out := Insert(buf, d, DefaultPattern)

	if out.NumFrames() != 1016 {
		t.Fatalf("NumFrames() = %d, want 1016", out.NumFrames())
	}

	for i, db := range DefaultPattern {
		if want := utils.Amplitude(db, 16); out.Data[i] != want {
			t.Errorf("frame %d = %d, want %d", i, out.Data[i], want)
		}
	}

	for i, v := range out.Data[16:] {
		if v != 0 {
			t.Fatalf("frame %d = %d, want silence", i+16, v)
		}
	}
}

// Remove on the output of TestInsert_MonoSilence gives back the original.
func TestRemove_RestoresMonoSilence(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 1}
	payload := audiotest.Silence(1000, 1, 2)
	buf, err := audio.Decode(payload, d)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	out, err := Remove(Insert(buf, d, DefaultPattern), DefaultPattern)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if out.NumFrames() != 1000 {
		t.Errorf("NumFrames() = %d, want 1000", out.NumFrames())
	}
	if !slices.Equal(out.Data, buf.Data) {
		t.Error("Remove(Insert(x)) != x")
	}
}

func TestRemove_InsufficientLength(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 1}
	buf := newBuffer(t, d, make([]int, 10))

	out, err := Remove(buf, DefaultPattern)
	if out != nil {
		t.Error("Remove() returned a buffer on failure")
	}
	if !errors.Is(err, ErrInsufficientLength) {
		t.Fatalf("Remove() error = %v, want ErrInsufficientLength", err)
	}

	var le *InsufficientLengthError
	if !errors.As(err, &le) {
		t.Fatalf("Remove() error is not *InsufficientLengthError")
	}
	if le.Frames != 10 || le.Need != 16 {
		t.Errorf("InsufficientLengthError = %+v, want Frames=10 Need=16", le)
	}
	if len(buf.Data) != 10 {
		t.Error("Remove() modified its input on failure")
	}
}

// Stereo 24-bit markers carry the same value on both channels.
func TestInsert_StereoMarkersMatch(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 48000, BitDepth: 24, Channels: 2}
	samples := audiotest.Samples(1000, 2, audiotest.Sine(48000, 440, 4000000))
	buf := newBuffer(t, d, samples)

	out := Insert(buf, d, DefaultPattern)

	if out.NumFrames() != 1016 {
		t.Fatalf("NumFrames() = %d, want 1016", out.NumFrames())
	}

	for f := range 16 {
		left, right := out.Data[2*f], out.Data[2*f+1]
		if left != right {
			t.Errorf("marker frame %d: left %d != right %d", f, left, right)
		}
		if want := utils.Amplitude(DefaultPattern[f], 24); left != want {
			t.Errorf("marker frame %d = %d, want %d", f, left, want)
		}
	}

	if !slices.Equal(out.Data[32:], samples) {
		t.Error("original frames not preserved after markers")
	}
}

func TestInsertRemove_RoundTrip(t *testing.T) {
	t.Parallel()

	patterns := map[string]Pattern{
		"default": DefaultPattern,
		"ten":     {-90, -99, -90, -99, -90, -99, -90, -99, -90, -99},
		"single":  {-60},
	}

	descriptors := []audio.Descriptor{
		{SampleRate: 44100, BitDepth: 16, Channels: 1},
		{SampleRate: 44100, BitDepth: 16, Channels: 2},
		{SampleRate: 48000, BitDepth: 24, Channels: 1},
		{SampleRate: 48000, BitDepth: 24, Channels: 2},
	}

	for name, p := range patterns {
		for _, d := range descriptors {
			for _, frames := range []int{0, 1, 17, 1000} {
				samples := audiotest.Samples(frames, d.Channels, audiotest.Sine(d.SampleRate, 997, 1000))
				buf := newBuffer(t, d, samples)

				marked := Insert(buf, d, p)
				if marked.NumFrames() != frames+p.Len() {
					t.Errorf("%s %+v: Insert frames = %d, want %d", name, d, marked.NumFrames(), frames+p.Len())
				}

				out, err := Remove(marked, p)
				if err != nil {
					t.Fatalf("%s %+v: Remove() error = %v", name, d, err)
				}
				if out.NumFrames() != frames {
					t.Errorf("%s %+v: Remove frames = %d, want %d", name, d, out.NumFrames(), frames)
				}
				if !slices.Equal(out.Data, samples) && frames > 0 {
					t.Errorf("%s %+v: round trip changed %d frames", name, d, frames)
				}
			}
		}
	}
}

// Remove strips exactly len(p) frames whatever they contain.
func TestRemove_Blind(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 2}
	samples := audiotest.Samples(20, 2, func(frame, channel int) int { return frame*10 + channel })
	buf := newBuffer(t, d, samples)

	out, err := Remove(buf, DefaultPattern)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if !slices.Equal(out.Data, samples[32:]) {
		t.Errorf("Remove() = %v, want %v", out.Data, samples[32:])
	}
}

func TestRemove_ExactLength(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 1}
	out, err := Remove(newBuffer(t, d, make([]int, 16)), DefaultPattern)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if out.NumFrames() != 0 {
		t.Errorf("NumFrames() = %d, want 0", out.NumFrames())
	}
}

func TestInsertRemove_DoNotModifyInput(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 1}
	samples := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	buf := newBuffer(t, d, samples)

	_ = Insert(buf, d, DefaultPattern)
	out, err := Remove(buf, DefaultPattern)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	out.Data[0] = -1

	if !slices.Equal(buf.Data, samples) {
		t.Errorf("input buffer changed to %v", buf.Data)
	}
}

func TestInsert_NilBuffer(t *testing.T) {
	t.Parallel()

	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 2}
	out := Insert(nil, d, DefaultPattern)

	if out.NumFrames() != 16 {
		t.Errorf("NumFrames() = %d, want 16", out.NumFrames())
	}
}

func BenchmarkInsert(b *testing.B) {
	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 2}
	buf := &goaudio.IntBuffer{Format: d.Format(), Data: make([]int, 44100*2)}

	b.ReportAllocs()

	for b.Loop() {
		_ = Insert(buf, d, DefaultPattern)
	}
}

func BenchmarkRemove(b *testing.B) {
	d := audio.Descriptor{SampleRate: 44100, BitDepth: 16, Channels: 2}
	buf := &goaudio.IntBuffer{Format: d.Format(), Data: make([]int, 44100*2)}

	b.ReportAllocs()

	for b.Loop() {
		_, _ = Remove(buf, DefaultPattern)
	}
}
