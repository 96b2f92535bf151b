// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. Output is always
// 16-bit little-endian stereo (s16) at the file's sample rate; mono files
// are duplicated into both channels by the decoder.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	stream, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 1152*4)
//	n, err := stream.ReadFrames(buf)
//
// # Seeking
//
// When the input implements io.Seeker the stream also implements
// audio.Seeker. Decoding restarts at the nearest MPEG frame, so callers
// should seek DefaultPreRoll frames early and skip forward to land on an
// exact sample. Without a seekable input SeekFrame returns
// audio.ErrNotSeekable.
//
// # Frame Count
//
// NumFrames is taken from go-mp3's length, which is computed by scanning
// frame headers and may be off for VBR files without a Xing header.
package mp3
