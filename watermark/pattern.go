// SPDX-License-Identifier: EPL-2.0

package watermark

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ik5/wavmark/utils"
)

const (
	// DefaultOneDB is the level used for a logical 1.
	DefaultOneDB = -90
	// DefaultZeroDB is the level used for a logical 0.
	DefaultZeroDB = -99
	// DefaultBits is the bit string behind DefaultPattern.
	DefaultBits = "1011001010110100"
)

// Pattern is an ordered list of negative decibel values, one per marker
// frame. A Pattern is configuration: build it once and share it read-only.
type Pattern []int

// DefaultPattern is the 16-entry pattern written by the reference service.
var DefaultPattern = Pattern{-90, -99, -90, -90, -99, -99, -90, -99, -90, -99, -90, -90, -99, -90, -99, -99}

// FromBits builds a pattern from a string of '0' and '1', mapping each bit
// to oneDB or zeroDB.
func FromBits(bits string, oneDB, zeroDB int) (Pattern, error) {
	if bits == "" {
		return nil, ErrEmptyPattern
	}

	p := make(Pattern, 0, len(bits))
	for i, r := range bits {
		switch r {
		case '1':
			p = append(p, oneDB)
		case '0':
			p = append(p, zeroDB)
		default:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidBits, r, i)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Len is the number of marker frames the pattern produces.
func (p Pattern) Len() int { return len(p) }

// Validate checks the pattern is non-empty and every level is negative.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPattern
	}

	for i, db := range p {
		if db >= 0 {
			return fmt.Errorf("%w: entry %d is %d dB", ErrPositiveLevel, i, db)
		}
	}

	return nil
}

// Amplitudes converts every entry to a sample amplitude at bitDepth.
func (p Pattern) Amplitudes(bitDepth int) []int {
	out := make([]int, len(p))
	for i, db := range p {
		out[i] = utils.Amplitude(db, bitDepth)
	}

	return out
}

// Bits renders the pattern as '1' for entries equal to oneDB and '0'
// otherwise.
func (p Pattern) Bits(oneDB int) string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, db := range p {
		if db == oneDB {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// Clone returns an independent copy of p.
func (p Pattern) Clone() Pattern { return slices.Clone(p) }
