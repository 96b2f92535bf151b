// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/bestaudio/audio"
)

// mockOggVorbisReader simulates oggvorbis.Reader: Read returns interleaved values.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	maxRead    int // values per Read; 0 means no limit
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.samples)-m.offset)
	if m.maxRead > 0 {
		n = min(n, m.maxRead)
	}
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n
	return n, nil
}

func (m *mockOggVorbisReader) SetPosition(pos int64) error {
	if pos < 0 {
		return errors.New("negative position")
	}
	m.offset = int(pos) * m.channels
	return nil
}

func newSource(m *mockOggVorbisReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels, frames: -1, seekable: true}
}

func floats(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not Ogg Vorbis data")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := newSource(&mockOggVorbisReader{sampleRate: 48000, channels: 6})

	if s.Format() != audio.FormatF32 {
		t.Errorf("Format() = %+v, want %+v", s.Format(), audio.FormatF32)
	}
	if s.SampleRate() != 48000 || s.Channels() != 6 {
		t.Errorf("properties = %d Hz %d ch, want 48000 Hz 6 ch", s.SampleRate(), s.Channels())
	}
	if s.ChannelLayout() != audio.DefaultChannelLayout(6) {
		t.Errorf("ChannelLayout() = %#x, want %#x", s.ChannelLayout(), audio.DefaultChannelLayout(6))
	}
	if s.NumFrames() != -1 {
		t.Errorf("NumFrames() = %d, want -1", s.NumFrames())
	}
	if s.DefaultPreRoll() != defaultPreRoll {
		t.Errorf("DefaultPreRoll() = %d, want %d", s.DefaultPreRoll(), defaultPreRoll)
	}
}

func TestSource_ReadFrames(t *testing.T) {
	t.Parallel()

	samples := []float32{0.5, -0.5, 0.25, -0.25, 1, -1}
	tests := []struct {
		name    string
		maxRead int
	}{
		{"whole reads", 0},
		{"short reads", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples, maxRead: tt.maxRead})
			buf := make([]byte, 2*2*4)

			n, err := s.ReadFrames(buf)
			if err != nil || n != 2 {
				t.Fatalf("ReadFrames() = %d, %v, want 2, nil", n, err)
			}
			got := floats(buf)
			for i, want := range samples[:4] {
				if got[i] != want {
					t.Errorf("value %d = %v, want %v", i, got[i], want)
				}
			}

			n, err = s.ReadFrames(buf)
			if err != nil || n != 1 {
				t.Fatalf("ReadFrames() = %d, %v, want 1, nil", n, err)
			}

			n, err = s.ReadFrames(buf)
			if n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("ReadFrames() at end = %d, %v, want 0, EOF", n, err)
			}
		})
	}
}

func TestSource_ReadFramesErrors(t *testing.T) {
	t.Parallel()

	s := newSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, err: errors.New("bad packet")})
	if _, err := s.ReadFrames(make([]byte, 8)); err == nil || errors.Is(err, io.EOF) {
		t.Errorf("ReadFrames() error = %v, want decode failure", err)
	}
	if _, err := s.ReadFrames(make([]byte, 4)); !errors.Is(err, audio.ErrShortBuffer) {
		t.Errorf("ReadFrames(4 bytes) error = %v, want ErrShortBuffer", err)
	}
}

func TestSource_SeekFrame(t *testing.T) {
	t.Parallel()

	m := &mockOggVorbisReader{sampleRate: 44100, channels: 1, samples: []float32{0, 0.1, 0.2, 0.3}}
	s := newSource(m)

	if err := s.SeekFrame(2); err != nil {
		t.Fatalf("SeekFrame() error = %v", err)
	}
	buf := make([]byte, 4)
	if _, err := s.ReadFrames(buf); err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if got := floats(buf)[0]; got != float32(0.2) {
		t.Errorf("value after seek = %v, want 0.2", got)
	}

	s.seekable = false
	if err := s.SeekFrame(0); !errors.Is(err, audio.ErrNotSeekable) {
		t.Errorf("SeekFrame() on unseekable input error = %v, want ErrNotSeekable", err)
	}
}

func BenchmarkSource_ReadFrames(b *testing.B) {
	samples := make([]float32, 44100*2)
	buf := make([]byte, 4096*2*4)

	b.ReportAllocs()
	for b.Loop() {
		s := newSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})
		for {
			if _, err := s.ReadFrames(buf); err != nil {
				break
			}
		}
	}
}
