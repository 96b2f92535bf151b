// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/bestaudio/audio"
	"github.com/mewkiz/flac"
)

// frameParser is an interface for flac.Stream to allow testing.
// Each call returns one FLAC frame as per-channel sample slices.
type frameParser interface {
	next() ([][]int32, error)
}

type streamParser struct {
	stream *flac.Stream
}

// frameSeeker is implemented by parsers that can reposition to the FLAC
// frame containing a sample, returning that frame's first sample.
type frameSeeker interface {
	seek(sample uint64) (uint64, error)
}

// seekingParser wraps a stream opened with flac.NewSeek.
type seekingParser struct {
	streamParser
}

func (p seekingParser) seek(sample uint64) (uint64, error) {
	return p.stream.Seek(sample)
}

func (p streamParser) next() ([][]int32, error) {
	frame, err := p.stream.ParseNext()
	if err != nil {
		return nil, err
	}

	planes := make([][]int32, len(frame.Subframes))
	for ch, sub := range frame.Subframes {
		planes[ch] = sub.Samples[:frame.BlockSize]
	}
	return planes, nil
}

type source struct {
	dec        frameParser
	format     audio.Format
	sampleRate int
	channels   int
	frames     int64

	// decoded samples of the current FLAC frame not yet returned
	pending [][]int32
	offset  int
	skip    int64 // samples to drop from the next frame after a seek
	eof     bool
}

func (s *source) Format() audio.Format  { return s.format }
func (s *source) SampleRate() int       { return s.sampleRate }
func (s *source) Channels() int         { return s.channels }
func (s *source) ChannelLayout() uint64 { return audio.DefaultChannelLayout(s.channels) }
func (s *source) NumFrames() int64      { return s.frames }
func (s *source) Close() error          { return nil }

func (s *source) ReadFrames(dst []byte) (int, error) {
	bps := s.format.BytesPerSample
	frames, err := audio.FramesIn(dst, s.channels*bps)
	if err != nil {
		return 0, err
	}

	got := 0
	for got < frames {
		if s.pending == nil || s.offset >= len(s.pending[0]) {
			if s.eof {
				break
			}
			planes, err := s.dec.next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					s.eof = true
					break
				}
				return got, fmt.Errorf("decoding flac: %w", err)
			}
			if len(planes) != s.channels {
				return got, ErrChannelMismatch
			}
			s.pending, s.offset = planes, int(min(s.skip, int64(len(planes[0]))))
			s.skip -= int64(s.offset)
			continue
		}

		n := min(frames-got, len(s.pending[0])-s.offset)
		for i := range n {
			base := (got + i) * s.channels * bps
			for ch := range s.channels {
				audio.PutInt(dst[base+ch*bps:], s.format, int(s.pending[ch][s.offset+i]))
			}
		}
		s.offset += n
		got += n
	}

	if got == 0 {
		return 0, io.EOF
	}
	return got, nil
}

// SeekFrame positions the stream so the next ReadFrames starts at frame.
// Seeking at or past the end leaves the stream at EOF.
func (s *source) SeekFrame(frame int64) error {
	sk, ok := s.dec.(frameSeeker)
	if !ok {
		return audio.ErrNotSeekable
	}

	frame = max(frame, 0)
	s.pending, s.offset, s.skip = nil, 0, 0
	if s.frames >= 0 && frame >= s.frames {
		s.eof = true
		return nil
	}

	landed, err := sk.seek(uint64(frame))
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
		return nil
	case err != nil:
		return fmt.Errorf("seeking flac: %w", err)
	}
	s.eof = false
	s.skip = frame - int64(landed)
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	var (
		stream *flac.Stream
		parser frameParser
		err    error
	)
	if rs, ok := r.(io.ReadSeeker); ok {
		stream, err = flac.NewSeek(rs)
		parser = seekingParser{streamParser{stream: stream}}
	} else {
		stream, err = flac.New(r)
		parser = streamParser{stream: stream}
	}
	if err != nil {
		return nil, fmt.Errorf("reading flac stream info: %w", err)
	}

	info := stream.Info
	if info.NChannels == 0 || info.SampleRate == 0 {
		return nil, ErrUnsupportedFlacLayout
	}
	if info.BitsPerSample > 32 {
		return nil, ErrUnsupportedBitDepth
	}

	frames := int64(-1)
	if info.NSamples > 0 {
		frames = int64(info.NSamples)
	}

	return &source{
		dec:        parser,
		format:     audio.IntFormat(int(info.BitsPerSample)),
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		frames:     frames,
	}, nil
}
