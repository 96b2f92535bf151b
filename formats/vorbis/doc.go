// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Samples are delivered
// as interleaved 32-bit little-endian floats (f32) in the range [-1, 1]:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// # Decoding Vorbis Files
//
//	file, _ := os.Open("audio.ogg")
//	stream, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096*stream.Channels()*4)
//	n, err := stream.ReadFrames(buf)
//
// # Seeking
//
// With a seekable input the stream implements audio.Seeker through
// oggvorbis' granule-position search. The first frames after a seek come
// from a partially primed overlap-add window, hence DefaultPreRoll.
//
// NumFrames is -1 when the length cannot be read from the last Ogg page.
package vorbis
