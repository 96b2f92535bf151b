// SPDX-License-Identifier: EPL-2.0

package shim

import (
	"fmt"
	"unsafe"
)

// maxRawBytes caps a caller-described buffer; larger sizes cannot be backed
// by real memory and would overflow slice construction.
const maxRawBytes = 1 << 40

// rawSize returns count*stride, or an error when it overflows maxRawBytes.
func rawSize(count int64, stride int) (int, error) {
	if stride <= 0 || count > maxRawBytes/int64(stride) {
		return 0, fmt.Errorf("%w: %d samples of %d bytes", ErrBufferTooLarge, count, stride)
	}
	return int(count) * stride, nil
}

// GetPackedAudioRaw is GetPackedAudio over caller memory: data must point to
// count*Channels*BytesPerSample bytes. A nil data is a missing buffer.
func (m *Manager) GetPackedAudioRaw(h Handle, data unsafe.Pointer, start, count int64) Status {
	return m.with("get_packed_audio", h, func(src AudioSource) error {
		var buf []byte
		if data != nil && count > 0 {
			size, err := rawSize(count, src.AudioProperties().FrameSize())
			if err != nil {
				return err
			}
			buf = unsafe.Slice((*byte)(data), size)
		}
		return src.PackedAudio(buf, start, count)
	})
}

// GetPlanarAudioRaw is GetPlanarAudio over caller memory: data must point to
// Channels plane pointers of count*BytesPerSample bytes each.
func (m *Manager) GetPlanarAudioRaw(h Handle, data *unsafe.Pointer, start, count int64) Status {
	return m.with("get_planar_audio", h, func(src AudioSource) error {
		var planes [][]byte
		if data != nil && count > 0 {
			props := src.AudioProperties()
			size, err := rawSize(count, props.BytesPerSample)
			if err != nil {
				return err
			}

			ptrs := unsafe.Slice(data, props.Channels)
			planes = make([][]byte, props.Channels)
			for ch, p := range ptrs {
				if p != nil {
					planes[ch] = unsafe.Slice((*byte)(p), size)
				}
			}
		}
		return src.PlanarAudio(planes, start, count)
	})
}
