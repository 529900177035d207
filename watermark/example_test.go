// SPDX-License-Identifier: EPL-2.0

package watermark_test

import (
	"fmt"

	"github.com/ik5/wavmark/audio"
	"github.com/ik5/wavmark/watermark"
)

// Example_insertRemove shows the marker frames added to a stereo buffer and
// their removal.
func Example_insertRemove() {
	d := audio.Descriptor{SampleRate: 48000, BitDepth: 24, Channels: 2}
	payload := make([]byte, 4*d.FrameSize())

	buf, err := audio.Decode(payload, d)
	if err != nil {
		fmt.Println(err)
		return
	}

	p := watermark.Pattern{-90, -99}
	marked := watermark.Insert(buf, d, p)
	fmt.Println("frames:", marked.NumFrames())
	fmt.Println("markers:", marked.Data[:4])

	clean, err := watermark.Remove(marked, p)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("frames:", clean.NumFrames())
	// Output:
	// frames: 6
	// markers: [265 265 94 94]
	// frames: 4
}
