// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Stream.
package intpcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/bestaudio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders the stream needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Stream converts go-audio IntBuffer output to native packed PCM.
type Stream struct {
	dec        Reader
	format     audio.Format
	sampleRate int
	channels   int
	layout     uint64
	frames     int64
	remaining  int64 // -1 when the data size is unknown
	intBuf     *goaudio.IntBuffer
}

// New wraps dec. frames is the frame count declared by the container, or -1.
func New(dec Reader, sampleRate, channels, bitDepth int, frames int64) *Stream {
	return &Stream{
		dec:        dec,
		format:     audio.IntFormat(bitDepth),
		sampleRate: sampleRate,
		channels:   channels,
		layout:     audio.DefaultChannelLayout(channels),
		frames:     frames,
		remaining:  frames,
		intBuf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			Data:   make([]int, 0, 4096),
		},
	}
}

func (s *Stream) Format() audio.Format  { return s.format }
func (s *Stream) SampleRate() int       { return s.sampleRate }
func (s *Stream) Channels() int         { return s.channels }
func (s *Stream) ChannelLayout() uint64 { return s.layout }
func (s *Stream) NumFrames() int64      { return s.frames }

func (s *Stream) Close() error { return nil }

func (s *Stream) ReadFrames(dst []byte) (int, error) {
	bps := s.format.BytesPerSample
	frames, err := audio.FramesIn(dst, s.channels*bps)
	if err != nil {
		return 0, err
	}
	if s.remaining >= 0 && int64(frames) > s.remaining {
		frames = int(s.remaining)
	}
	if frames == 0 {
		return 0, io.EOF
	}

	want := frames * s.channels
	filled := 0
	for filled < want {
		if cap(s.intBuf.Data) < want-filled {
			s.intBuf.Data = make([]int, want-filled)
		}
		s.intBuf.Data = s.intBuf.Data[:want-filled]

		n, err := s.dec.PCMBuffer(s.intBuf)
		for i := range n {
			audio.PutInt(dst[(filled+i)*bps:], s.format, s.intBuf.Data[i])
		}
		filled += n

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, fmt.Errorf("reading pcm: %w", err)
		}
		if n == 0 {
			break
		}
	}

	got := filled / s.channels
	if s.remaining >= 0 {
		s.remaining -= int64(got)
	}
	if got == 0 {
		return 0, io.EOF
	}
	return got, nil
}
