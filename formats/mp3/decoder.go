// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/bestaudio/audio"
)

const (
	// go-mp3 always outputs 16-bit little-endian stereo
	channels  = 2
	frameSize = channels * 2

	// Four MPEG-1 Layer III granule pairs.
	defaultPreRoll = 4 * 1152
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// mp3Seeker is implemented by gomp3.Decoder; seeking only works when the
// input is an io.Seeker.
type mp3Seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

type source struct {
	dec        mp3Reader
	sampleRate int
	frames     int64
	seekable   bool
}

func (s *source) Format() audio.Format  { return audio.FormatS16 }
func (s *source) SampleRate() int       { return s.sampleRate }
func (s *source) Channels() int         { return channels }
func (s *source) ChannelLayout() uint64 { return audio.DefaultChannelLayout(channels) }
func (s *source) NumFrames() int64      { return s.frames }
func (s *source) DefaultPreRoll() int64 { return defaultPreRoll }
func (s *source) Close() error          { return nil }

func (s *source) ReadFrames(dst []byte) (int, error) {
	frames, err := audio.FramesIn(dst, frameSize)
	if err != nil {
		return 0, err
	}

	n, err := io.ReadFull(s.dec, dst[:frames*frameSize])
	got := n / frameSize
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return got, fmt.Errorf("decoding mp3: %w", err)
	}
	if got == 0 {
		return 0, io.EOF
	}
	return got, nil
}

func (s *source) SeekFrame(frame int64) error {
	sk, ok := s.dec.(mp3Seeker)
	if !ok || !s.seekable {
		return audio.ErrNotSeekable
	}
	if _, err := sk.Seek(frame*frameSize, io.SeekStart); err != nil {
		return fmt.Errorf("seeking mp3: %w", err)
	}
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 header: %w", err)
	}

	_, seekable := r.(io.Seeker)

	frames := int64(-1)
	if l := dec.Length(); l >= 0 {
		frames = l / frameSize
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		frames:     frames,
		seekable:   seekable,
	}, nil
}
