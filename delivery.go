// SPDX-License-Identifier: EPL-2.0

package bestaudio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/bestaudio/audio"
)

// maxForwardBlocks is how far ahead a target may be before a seek is
// preferred over decoding forward.
const maxForwardBlocks = 8

// PackedAudio writes count interleaved frames starting at frame start into
// buf, which must hold count*Channels*BytesPerSample bytes.
//
// Frames before 0 or at or past NumSamples are zero. start may be negative.
// A failure may leave buf partially written.
func (s *Source) PackedAudio(buf []byte, start, count int64) error {
	if err := s.checkRequest(count); err != nil || count == 0 {
		return err
	}

	fs := int64(s.props.FrameSize())
	if count > int64(len(buf))/fs {
		return fmt.Errorf("packed buffer holds %d bytes, %d frames need more: %w", len(buf), count, audio.ErrShortBuffer)
	}
	buf = buf[:count*fs]
	clear(buf)

	defer s.cache.trim()
	return s.walk(start, count, func(b *block, from, n int, at int64) {
		copy(buf[at*fs:], b.data[int64(from)*fs:int64(from+n)*fs])
	})
}

// PlanarAudio writes count frames starting at frame start, one plane per
// channel. Each plane must hold count*BytesPerSample bytes.
//
// Out-of-range frames are zero, as for PackedAudio.
func (s *Source) PlanarAudio(planes [][]byte, start, count int64) error {
	if err := s.checkRequest(count); err != nil || count == 0 {
		return err
	}

	channels := s.props.Channels
	bps := int64(s.props.BytesPerSample)
	if len(planes) < channels {
		return fmt.Errorf("%d planes for %d channels: %w", len(planes), channels, audio.ErrShortBuffer)
	}
	for ch := range channels {
		if count > int64(len(planes[ch]))/bps {
			return fmt.Errorf("plane %d holds %d bytes, %d frames need more: %w", ch, len(planes[ch]), count, audio.ErrShortBuffer)
		}
	}
	need := count * bps
	for ch := range channels {
		clear(planes[ch][:need])
	}

	defer s.cache.trim()
	return s.walk(start, count, func(b *block, from, n int, at int64) {
		fs := int64(channels) * bps
		for i := range int64(n) {
			frame := b.data[(int64(from)+i)*fs:]
			dst := (at + i) * bps
			for ch := range int64(channels) {
				copy(planes[ch][dst:dst+bps], frame[ch*bps:(ch+1)*bps])
			}
		}
	})
}

func (s *Source) checkRequest(count int64) error {
	if s.closed {
		return ErrClosed
	}
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	return nil
}

// walk visits the decoded blocks covering the in-range part of
// [start, start+count). fn receives n frames of b from frame from, to be
// written at offset at of the request.
func (s *Source) walk(start, count int64, fn func(b *block, from, n int, at int64)) error {
	lo := max(start, 0)
	hi := s.props.NumSamples
	if start <= hi-count {
		hi = start + count
	}

	for pos := lo; pos < hi; {
		idx := pos / blockFrames
		b, err := s.fetch(idx)
		if err != nil {
			return err
		}

		from := int(pos - idx*blockFrames)
		if b == nil || from >= b.frames {
			// The stream ended before its declared length.
			return nil
		}

		n := int(min(int64(b.frames-from), hi-pos))
		fn(b, from, n, pos-start)
		pos += int64(n)
	}
	return nil
}

// fetch returns block idx from the cache or decodes it. A nil block means
// the stream ends before it.
func (s *Source) fetch(idx int64) (*block, error) {
	if b, ok := s.cache.get(idx); ok {
		return b, nil
	}

	target := idx * blockFrames
	if err := s.seekTo(target); err != nil {
		return nil, err
	}

	b, err := s.decodeBlock(idx)
	if err != nil || b == nil {
		return nil, err
	}
	s.cache.put(b)
	return b, nil
}

// seekTo positions the stream so the next frame it yields is target.
func (s *Source) seekTo(target int64) error {
	if s.stream == nil {
		if err := s.reopen(); err != nil {
			return err
		}
	}
	if s.pos == target {
		return nil
	}
	if s.pos < target && target-s.pos <= maxForwardBlocks*blockFrames {
		return s.skip(target)
	}

	if sk, ok := s.stream.(audio.Seeker); ok {
		from := max(target-s.preroll, 0)
		err := sk.SeekFrame(from)
		switch {
		case err == nil:
			s.log.Debug("seek", "target", target, "from", from)
			s.pos = from
			return s.skip(target)
		case !errors.Is(err, audio.ErrNotSeekable):
			s.invalidate()
			return fmt.Errorf("%w: seeking to frame %d: %w", ErrDecode, from, err)
		}
	}

	if s.pos > target {
		s.log.Debug("reopen", "target", target, "pos", s.pos)
		if err := s.reopen(); err != nil {
			return err
		}
	}
	return s.skip(target)
}

// skip decodes and discards frames up to target.
func (s *Source) skip(target int64) error {
	fs := s.props.FrameSize()
	var scratch []byte

	for s.pos < target {
		n := int(min(target-s.pos, blockFrames))
		if cap(scratch) < n*fs {
			scratch = make([]byte, n*fs)
		}
		got, err := s.readFrames(scratch[:n*fs])
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if got == 0 {
			return nil
		}
	}
	return nil
}

// decodeBlock reads block idx from the current position, which must be its
// first frame. The final block may be short; nil means no frames remain.
func (s *Source) decodeBlock(idx int64) (*block, error) {
	fs := s.props.FrameSize()
	data := make([]byte, blockFrames*fs)

	frames := 0
	for frames < blockFrames {
		n, err := s.readFrames(data[frames*fs:])
		frames += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}

	if frames == 0 {
		return nil, nil
	}
	return &block{index: idx, frames: frames, data: data[:frames*fs]}, nil
}

// readFrames reads from the stream, advancing pos. A decode failure or a
// format change invalidates the stream.
func (s *Source) readFrames(dst []byte) (int, error) {
	if s.stream == nil {
		return 0, io.EOF
	}

	n, err := s.stream.ReadFrames(dst)
	s.pos += int64(n)

	if n > 0 {
		if ferr := s.checkFormat(); ferr != nil {
			s.invalidate()
			return 0, ferr
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		s.invalidate()
		return n, fmt.Errorf("%w at frame %d: %w", ErrDecode, s.pos, err)
	}
	return n, err
}

// checkFormat rejects decoded data whose layout differs from the opened
// properties.
func (s *Source) checkFormat() error {
	f := s.stream.Format()
	if f != s.props.Format || s.stream.Channels() != s.props.Channels ||
		s.stream.SampleRate() != s.props.SampleRate {
		return fmt.Errorf("%w: %d-bit %d Hz %d channels at frame %d",
			ErrFormatChanged, f.Bits, s.stream.SampleRate(), s.stream.Channels(), s.pos)
	}
	return nil
}
