// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - PCM 16, 24 and 32-bit, big-endian on disk
//   - Mono and multi-channel
//   - Any sample rate
//
// Samples are delivered little-endian: 16-bit as s16, wider depths as s32
// with 24-bit left-justified.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	stream, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096*stream.Channels()*stream.Format().BytesPerSample)
//	n, err := stream.ReadFrames(buf)
package aiff
