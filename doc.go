// SPDX-License-Identifier: EPL-2.0

// Package bestaudio provides sample-accurate random access to decoded audio.
//
// A Source opens one audio track of a file and delivers any range of samples
// on request, in the native format of the decoder. Requests may start before
// the first sample or extend past the last one; those frames are zero.
//
// # Supported Formats
//
// The container is detected from its content:
//   - WAV (PCM 16, 24 and 32-bit) via formats/wav
//   - AIFF (PCM 16, 24 and 32-bit) via formats/aiff
//   - FLAC via formats/flac
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Integer samples wider than 16 bits are delivered in 32-bit containers,
// left-justified. Vorbis is delivered as 32-bit float.
//
// # Quick Start
//
//	src, err := bestaudio.Open(bestaudio.DefaultOptions("audio.wav"))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	props := src.AudioProperties()
//	buf := make([]byte, 4800*props.FrameSize())
//	err = src.PackedAudio(buf, 48000, 4800)
//
// # Packed and Planar Delivery
//
// PackedAudio writes interleaved frames into one buffer. PlanarAudio writes
// one buffer per channel. Both read the same decoded blocks, so the samples
// are identical and only the layout differs.
//
// # Caching and Seeking
//
// Decoded audio is kept in 4096-frame blocks in a least-recently-used cache
// bounded by SetMaxCacheSize (100 MiB by default). Every delivery call ends
// with the cache at or below the bound.
//
// Nearby forward requests are decoded through. Farther ones seek when the
// decoder supports it, starting SetSeekPreRoll frames early and discarding
// them; otherwise decoding restarts from the first frame.
//
// # Exact Duration
//
// NumSamples starts as the decoder's estimate. ExactDuration decodes the
// whole track once to count it, reporting through the Progress callback.
// With an index CacheMode the count is stored in a small database next to
// the source (or in CachePath) and reused by later opens of the same,
// unmodified file.
//
// # Format Changes
//
// A block whose decoded format differs from the
// opened properties fails the request with ErrFormatChanged. Data is never
// delivered with properties other than the ones AudioProperties reports.
//
// A Source is not safe for concurrent use; distinct sources are independent.
package bestaudio
