// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio file decoding.
//
// This package uses github.com/mewkiz/flac. Samples up to 16 bits are
// delivered as s16; deeper samples as s32, left-justified so that a 24-bit
// file uses the full 32-bit range.
//
//	file, _ := os.Open("audio.flac")
//	stream, err := flac.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096*stream.Channels()*stream.Format().BytesPerSample)
//	n, err := stream.ReadFrames(buf)
//
// When the reader is an io.ReadSeeker the stream implements SeekFrame
// through the SEEKTABLE, or a table built by scanning the frames once, and
// drops the leading samples of the landed frame so reads resume exactly at
// the requested sample. Other readers return audio.ErrNotSeekable. NumFrames
// comes from STREAMINFO and is -1 when the encoder left it zero.
package flac
