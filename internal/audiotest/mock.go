// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/ik5/bestaudio/audio"
)

// ErrInjected is returned by a MockStream configured with FailAt.
var ErrInjected = errors.New("injected decode failure")

// Value is the deterministic s16 sample MockStream produces for frame and channel.
func Value(frame int64, channel int) int16 {
	return int16((frame*31 + int64(channel)*977) % 65521)
}

// MockStream is a test helper that generates 16-bit PCM deterministically.
// It implements audio.Stream, audio.PreRoller, audio.VariableFormatter and,
// when Seekable is set, audio.Seeker.
type MockStream struct {
	SampleRateHz int
	NumChannels  int
	TotalFrames  int64 // frames actually produced
	HeaderFrames int64 // value reported by NumFrames
	Seekable     bool
	PreRoll      int64
	FailAt       int64 // fail when reading past this frame; <0 disables
	ChangeAt     int64 // report a different format from this frame on; <0 disables
	Variable     bool  // value of VariableFormat

	pos    int64
	seeks  *atomic.Int64
	closed bool
}

// NewMockStream creates a stereo-or-more s16 stream of total frames.
func NewMockStream(sampleRate, channels int, total int64) *MockStream {
	return &MockStream{
		SampleRateHz: sampleRate,
		NumChannels:  channels,
		TotalFrames:  total,
		HeaderFrames: total,
		FailAt:       -1,
		ChangeAt:     -1,
		seeks:        &atomic.Int64{},
	}
}

func (m *MockStream) Format() audio.Format {
	if m.ChangeAt >= 0 && m.pos > m.ChangeAt {
		return audio.FormatS32
	}
	return audio.FormatS16
}

func (m *MockStream) SampleRate() int       { return m.SampleRateHz }
func (m *MockStream) Channels() int         { return m.NumChannels }
func (m *MockStream) ChannelLayout() uint64 { return audio.DefaultChannelLayout(m.NumChannels) }
func (m *MockStream) NumFrames() int64      { return m.HeaderFrames }
func (m *MockStream) DefaultPreRoll() int64 { return m.PreRoll }
func (m *MockStream) Closed() bool          { return m.closed }
func (m *MockStream) VariableFormat() bool  { return m.Variable }

func (m *MockStream) Close() error {
	m.closed = true
	return nil
}

// Seeks reports how many times SeekFrame was called.
func (m *MockStream) Seeks() int64 { return m.seeks.Load() }

func (m *MockStream) SeekFrame(frame int64) error {
	if !m.Seekable {
		return audio.ErrNotSeekable
	}
	m.seeks.Add(1)
	m.pos = min(max(frame, 0), m.TotalFrames)
	return nil
}

func (m *MockStream) ReadFrames(dst []byte) (int, error) {
	frames, err := audio.FramesIn(dst, m.NumChannels*2)
	if err != nil {
		return 0, err
	}
	if m.pos >= m.TotalFrames {
		return 0, io.EOF
	}
	if m.FailAt >= 0 && m.pos+int64(frames) > m.FailAt {
		return 0, ErrInjected
	}

	n := int(min(int64(frames), m.TotalFrames-m.pos))
	for i := range n {
		for ch := range m.NumChannels {
			v := Value(m.pos+int64(i), ch)
			off := (i*m.NumChannels + ch) * 2
			dst[off] = byte(v)
			dst[off+1] = byte(uint16(v) >> 8)
		}
	}
	m.pos += int64(n)
	return n, nil
}

// MockDecoder hands out copies of Template and counts Decode calls.
// The reader passed to Decode is ignored.
type MockDecoder struct {
	Template MockStream
	Err      error

	decodes atomic.Int64
	seeks   atomic.Int64
	last    atomic.Pointer[MockStream]
}

func (d *MockDecoder) Decode(r io.Reader) (audio.Stream, error) {
	d.decodes.Add(1)
	if d.Err != nil {
		return nil, d.Err
	}

	s := d.Template
	s.pos = 0
	s.closed = false
	s.seeks = &d.seeks
	d.last.Store(&s)
	return &s, nil
}

// Decodes reports how many streams were created.
func (d *MockDecoder) Decodes() int64 { return d.decodes.Load() }

// Seeks reports SeekFrame calls across all streams.
func (d *MockDecoder) Seeks() int64 { return d.seeks.Load() }

// Last returns the most recently decoded stream.
func (d *MockDecoder) Last() *MockStream { return d.last.Load() }
