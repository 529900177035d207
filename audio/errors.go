// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedSampleRate  = errors.New("unsupported sample rate")
	ErrUnsupportedSampleWidth = errors.New("unsupported sample width")
	ErrUnsupportedChannels    = errors.New("unsupported channel count")

	// ErrTruncatedPayload indicates a PCM payload that does not hold a whole
	// number of frames for its descriptor.
	ErrTruncatedPayload = errors.New("pcm payload is not a whole number of frames")

	// ErrPartialFrame indicates a sample buffer whose length is not a
	// multiple of its channel count.
	ErrPartialFrame = errors.New("sample buffer holds a partial frame")
)

// DescriptorError reports a descriptor value outside the configured
// allow-list. It unwraps to one of ErrUnsupportedSampleRate,
// ErrUnsupportedSampleWidth or ErrUnsupportedChannels.
type DescriptorError struct {
	Field   string
	Value   int
	Allowed []int
	Err     error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("%s: %s %d, allowed %v", e.Err, e.Field, e.Value, e.Allowed)
}

func (e *DescriptorError) Unwrap() error { return e.Err }

// IsDescriptorError reports whether err carries a *DescriptorError.
func IsDescriptorError(err error) bool {
	var de *DescriptorError
	return errors.As(err, &de)
}
