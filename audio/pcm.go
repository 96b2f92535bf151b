// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// FramesIn returns how many whole frames of frameSize bytes fit in dst.
func FramesIn(dst []byte, frameSize int) (int, error) {
	if frameSize <= 0 || len(dst) < frameSize {
		return 0, ErrShortBuffer
	}
	if len(dst)%frameSize != 0 {
		return 0, ErrPartialFrame
	}
	return len(dst) / frameSize, nil
}

// PutInt stores an integer sample of f.Bits valid bits into dst using the
// native little-endian container of f. Samples narrower than their
// container are left-justified.
func PutInt(dst []byte, f Format, v int) {
	shift := f.BytesPerSample*8 - f.Bits
	if shift < 0 {
		shift = 0
	}

	switch f.BytesPerSample {
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(int16(v)<<shift))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(int32(v)<<shift))
	}
}

// PutFloat stores a float32 sample into dst.
func PutFloat(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

// ReadSeeker returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
