// SPDX-License-Identifier: EPL-2.0

package watermark

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientLength indicates a buffer shorter than the pattern.
	ErrInsufficientLength = errors.New("buffer shorter than watermark")

	ErrEmptyPattern  = errors.New("watermark pattern is empty")
	ErrInvalidBits   = errors.New("watermark bits must contain only '0' and '1'")
	ErrPositiveLevel = errors.New("watermark levels must be negative dB values")
)

// InsufficientLengthError reports a Remove on a buffer holding fewer frames
// than the pattern length. It unwraps to ErrInsufficientLength.
type InsufficientLengthError struct {
	Frames int
	Need   int
}

func (e *InsufficientLengthError) Error() string {
	return fmt.Sprintf("%s: have %d frames, need at least %d", ErrInsufficientLength, e.Frames, e.Need)
}

func (e *InsufficientLengthError) Unwrap() error { return ErrInsufficientLength }
