// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"

	"github.com/ik5/wavmark/audio"
)

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrOnlyPCMSupported     = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	// ErrTruncatedData indicates a data chunk shorter than its declared size.
	ErrTruncatedData = errors.New("WAV data chunk is truncated")
)

// IsFormatError reports whether err describes malformed container or
// payload bytes, as opposed to an unsupported descriptor or an I/O failure.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrNotWavFile) ||
		errors.Is(err, ErrOnlyPCMSupported) ||
		errors.Is(err, ErrUnsupportedWavChunks) ||
		errors.Is(err, ErrTruncatedData) ||
		errors.Is(err, audio.ErrTruncatedPayload)
}
