// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/bestaudio/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Vorbis blocks are at most 8192 samples; half a long block converges the overlap-add.
const defaultPreRoll = 2048

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// oggSeeker is implemented by oggvorbis.Reader when the input is an io.Seeker.
type oggSeeker interface {
	SetPosition(pos int64) error
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frames     int64
	seekable   bool
	floatBuf   []float32
}

func (s *source) Format() audio.Format  { return audio.FormatF32 }
func (s *source) SampleRate() int       { return s.sampleRate }
func (s *source) Channels() int         { return s.channels }
func (s *source) ChannelLayout() uint64 { return audio.DefaultChannelLayout(s.channels) }
func (s *source) NumFrames() int64      { return s.frames }
func (s *source) DefaultPreRoll() int64 { return defaultPreRoll }
func (s *source) Close() error          { return nil }

func (s *source) ReadFrames(dst []byte) (int, error) {
	frames, err := audio.FramesIn(dst, s.channels*4)
	if err != nil {
		return 0, err
	}

	want := frames * s.channels
	if cap(s.floatBuf) < want {
		s.floatBuf = make([]float32, want)
	}

	// oggvorbis returns interleaved values, possibly fewer than requested
	filled := 0
	for filled < want {
		n, err := s.dec.Read(s.floatBuf[filled:want])
		filled += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("decoding vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	got := filled / s.channels
	for i := range got * s.channels {
		audio.PutFloat(dst[i*4:], s.floatBuf[i])
	}
	if got == 0 {
		return 0, io.EOF
	}
	return got, nil
}

func (s *source) SeekFrame(frame int64) error {
	sk, ok := s.dec.(oggSeeker)
	if !ok || !s.seekable {
		return audio.ErrNotSeekable
	}
	if err := sk.SetPosition(frame); err != nil {
		return fmt.Errorf("seeking vorbis: %w", err)
	}
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading vorbis headers: %w", err)
	}

	_, seekable := r.(io.Seeker)

	frames := int64(-1)
	if l := dec.Length(); l > 0 {
		frames = l
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frames:     frames,
		seekable:   seekable,
		floatBuf:   make([]float32, 4096),
	}, nil
}
