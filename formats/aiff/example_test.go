// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ik5/bestaudio/formats/aiff"
)

// ExampleDecoder_Decode shows how to decode an AIFF file.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	stream, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	fmt.Printf("Decoded AIFF: %d Hz, %d channels, %d frames\n",
		stream.SampleRate(), stream.Channels(), stream.NumFrames())

	buf := make([]byte, 4096*stream.Channels()*stream.Format().BytesPerSample)
	for {
		n, err := stream.ReadFrames(buf)
		if n == 0 || err != nil {
			break
		}
		// buf[:n*frameSize] holds little-endian native samples.
	}
}

// ExampleDecoder_Decode_errorHandling shows the error for data that is not AIFF.
func ExampleDecoder_Decode_errorHandling() {
	_, err := aiff.Decoder{}.Decode(strings.NewReader("RIFF....WAVE"))
	fmt.Println(errors.Is(err, aiff.ErrNotAiffFile))
	// Output: true
}
