// SPDX-License-Identifier: EPL-2.0

// Package watermark prepends and strips a fixed run of marker frames at the
// head of a decoded PCM sample buffer.
//
// A Pattern is an ordered list of negative decibel values. Insert turns each
// entry into one marker frame whose value is utils.Amplitude(db, bitDepth)
// on every channel, then appends the original frames unchanged:
//
//	buf, _ := audio.Decode(payload, d)
//	marked := watermark.Insert(buf, d, watermark.DefaultPattern)
//
// Remove drops the first len(pattern) frames without looking at them, so
//
//	Remove(Insert(x, d, p), p) == x
//
// for every buffer x. There is no detection step: any leading frames are
// discarded.
//
// Both functions are pure. They never modify their input buffer and keep no
// state, so a single Pattern may be shared between goroutines as long as no
// one writes to it.
package watermark
