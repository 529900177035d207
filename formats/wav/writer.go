// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const headerSize = 44

// Write serializes c as a canonical PCM WAV file: a 44-byte header followed
// by the payload, plus one pad byte when the payload length is odd.
func Write(w io.Writer, c *Clip) error {
	d := c.Descriptor
	numChannels := uint16(d.Channels)
	bitsPerSample := uint16(d.BitDepth)
	blockAlign := numChannels * uint16(d.Width())
	byteRate := uint32(d.SampleRate) * uint32(blockAlign)
	dataSize := uint32(len(c.Payload))
	pad := dataSize % 2
	riffSize := 36 + dataSize + pad

	header := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(d.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	if _, err := w.Write(c.Payload); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}

	if pad == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("writing wav pad byte: %w", err)
		}
	}

	return nil
}
