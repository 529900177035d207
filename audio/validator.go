// SPDX-License-Identifier: EPL-2.0

package audio

import "slices"

var (
	// DefaultSampleRates accepted when no allow-list is configured.
	DefaultSampleRates = []int{44100, 48000}
	// DefaultSampleWidths accepted when no allow-list is configured, in bytes.
	DefaultSampleWidths = []int{2, 3}

	supportedChannels = []int{1, 2}
)

// Validator rejects descriptors outside a fixed allow-list before any
// decoding happens. It is read-only after construction and safe for
// concurrent use.
type Validator struct {
	sampleRates []int
	widths      []int
}

// NewValidator creates a Validator for the given sample rates (Hz) and
// sample widths (bytes). Empty lists fall back to the defaults.
func NewValidator(sampleRates, widths []int) *Validator {
	if len(sampleRates) == 0 {
		sampleRates = DefaultSampleRates
	}
	if len(widths) == 0 {
		widths = DefaultSampleWidths
	}

	v := &Validator{
		sampleRates: slices.Clone(sampleRates),
		widths:      slices.Clone(widths),
	}
	slices.Sort(v.sampleRates)
	slices.Sort(v.widths)

	return v
}

// SampleRates returns a copy of the allowed sample rates.
func (v *Validator) SampleRates() []int { return slices.Clone(v.sampleRates) }

// SampleWidths returns a copy of the allowed sample widths in bytes.
func (v *Validator) SampleWidths() []int { return slices.Clone(v.widths) }

// Validate returns nil when d is acceptable and a *DescriptorError naming
// the first offending value otherwise.
func (v *Validator) Validate(d Descriptor) error {
	if !slices.Contains(v.sampleRates, d.SampleRate) {
		return &DescriptorError{
			Field:   "sample rate",
			Value:   d.SampleRate,
			Allowed: v.SampleRates(),
			Err:     ErrUnsupportedSampleRate,
		}
	}

	if d.BitDepth%8 != 0 || !slices.Contains(v.widths, d.Width()) {
		return &DescriptorError{
			Field:   "sample width",
			Value:   d.Width(),
			Allowed: v.SampleWidths(),
			Err:     ErrUnsupportedSampleWidth,
		}
	}

	if !slices.Contains(supportedChannels, d.Channels) {
		return &DescriptorError{
			Field:   "channels",
			Value:   d.Channels,
			Allowed: slices.Clone(supportedChannels),
			Err:     ErrUnsupportedChannels,
		}
	}

	return nil
}
