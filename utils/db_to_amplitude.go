// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// MaxAmplitude returns the largest positive sample value for a signed
// two's-complement sample of bitDepth bits (32767 for 16-bit).
func MaxAmplitude(bitDepth int) int {
	return 1<<(bitDepth-1) - 1
}

// Amplitude converts a decibel value to an integer sample amplitude at the
// given bit depth: trunc(10^(db/20) * MaxAmplitude(bitDepth)).
//
// The result is truncated toward zero, not rounded, so existing watermarked
// material stays bit-exact. db is expected to be <= 0; larger values are not
// clamped.
func Amplitude(db, bitDepth int) int {
	linear := math.Pow(10, float64(db)/20.0)
	return int(linear * float64(MaxAmplitude(bitDepth)))
}
