// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// PCM16 packs samples as interleaved signed 16-bit little-endian PCM.
// It does not import the audio package so it can serve its tests.
func PCM16(samples ...int) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(s)))
	}

	return buf
}

// PCM24 packs samples as interleaved signed 24-bit little-endian PCM.
func PCM24(samples ...int) []byte {
	buf := make([]byte, len(samples)*3)
	for i, s := range samples {
		u := uint32(int32(s))
		buf[3*i] = byte(u)
		buf[3*i+1] = byte(u >> 8)
		buf[3*i+2] = byte(u >> 16)
	}

	return buf
}

// Silence returns a zeroed payload of frames frames.
func Silence(frames, channels, width int) []byte {
	return make([]byte, frames*channels*width)
}

// Samples generates frames*channels interleaved samples from waveform.
func Samples(frames, channels int, waveform func(frame, channel int) int) []int {
	out := make([]int, 0, frames*channels)
	for f := range frames {
		for ch := range channels {
			out = append(out, waveform(f, ch))
		}
	}

	return out
}

// Sine returns a waveform producing a sine tone at frequency Hz with the
// given peak amplitude.
func Sine(sampleRate int, frequency float64, peak int) func(frame, channel int) int {
	return func(frame, channel int) int {
		t := float64(frame) / float64(sampleRate)
		return int(float64(peak) * math.Sin(2*math.Pi*frequency*t))
	}
}

// WAV builds a canonical 44-byte-header PCM WAV file around payload.
func WAV(sampleRate, bitsPerSample, channels int, payload []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(payload))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize+dataSize%2)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(payload)
	if dataSize%2 == 1 {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}
