// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/ik5/bestaudio/audio"
)

var ErrUnsupportedFormat = errors.New("unsupported sample format")

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// ToInt16 converts native packed samples from src into dst and returns how
// many samples were written. Integer samples wider than 16 bits keep their
// most significant 16 bits; float samples are clamped to [-1, 1].
func ToInt16(dst []int16, src []byte, f audio.Format) (int, error) {
	bps := f.BytesPerSample
	if bps != 2 && bps != 4 {
		return 0, ErrUnsupportedFormat
	}
	if f.Float && bps != 4 {
		return 0, ErrUnsupportedFormat
	}

	n := min(len(dst), len(src)/bps)
	for i := range n {
		off := i * bps
		switch {
		case f.Float:
			dst[i] = Float32ToInt16(math.Float32frombits(binary.LittleEndian.Uint32(src[off:])))
		case bps == 2:
			dst[i] = int16(binary.LittleEndian.Uint16(src[off:]))
		default:
			dst[i] = int16(int32(binary.LittleEndian.Uint32(src[off:])) >> 16)
		}
	}
	return n, nil
}
