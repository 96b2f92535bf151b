// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/bestaudio/formats/wav"
)

// WriteWAV writes a 16-bit WAV of frames Value samples into dir and returns its path.
func WriteWAV(tb testing.TB, dir, name string, sampleRate, channels int, frames int64) string {
	tb.Helper()

	samples := make([]int16, frames*int64(channels))
	for i := range frames {
		for ch := range channels {
			samples[i*int64(channels)+int64(ch)] = Value(i, ch)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, sampleRate, channels, samples); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Packed16 returns the packed s16 bytes of Value samples for
// [start, start+count), with frames outside [0, total) zero.
func Packed16(channels int, total, start, count int64) []byte {
	out := make([]byte, count*int64(channels)*2)
	for i := range count {
		frame := start + i
		if frame < 0 || frame >= total {
			continue
		}
		for ch := range channels {
			off := (i*int64(channels) + int64(ch)) * 2
			binary.LittleEndian.PutUint16(out[off:], uint16(Value(frame, ch)))
		}
	}
	return out
}

// Interleave packs planar buffers of bytesPerSample samples.
func Interleave(planes [][]byte, bytesPerSample int) []byte {
	if len(planes) == 0 {
		return nil
	}
	frames := len(planes[0]) / bytesPerSample
	out := make([]byte, 0, frames*len(planes)*bytesPerSample)
	for i := range frames {
		for _, p := range planes {
			out = append(out, p[i*bytesPerSample:(i+1)*bytesPerSample]...)
		}
	}
	return out
}
