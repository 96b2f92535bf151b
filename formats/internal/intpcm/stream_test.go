// SPDX-License-Identifier: EPL-2.0

package intpcm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/bestaudio/audio"
)

// mockReader simulates the go-audio decoders. chunk limits the samples
// returned per call; 0 means no limit.
type mockReader struct {
	samples []int
	offset  int
	chunk   int
	eofLast bool
	err     error
}

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf.Data), len(m.samples)-m.offset)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	copy(buf.Data, m.samples[m.offset:m.offset+n])
	m.offset += n

	if m.eofLast && m.offset >= len(m.samples) {
		return n, io.EOF
	}
	return n, nil
}

func le16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestStream_Properties(t *testing.T) {
	t.Parallel()

	s := New(&mockReader{}, 48000, 6, 24, 100)

	if s.Format() != audio.FormatS24 {
		t.Errorf("Format() = %+v, want %+v", s.Format(), audio.FormatS24)
	}
	if s.SampleRate() != 48000 || s.Channels() != 6 || s.NumFrames() != 100 {
		t.Errorf("properties = %d Hz %d ch %d frames, want 48000 Hz 6 ch 100 frames",
			s.SampleRate(), s.Channels(), s.NumFrames())
	}
	if s.ChannelLayout() != audio.DefaultChannelLayout(6) {
		t.Errorf("ChannelLayout() = %#x, want %#x", s.ChannelLayout(), audio.DefaultChannelLayout(6))
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestStream_ReadFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reader *mockReader
	}{
		{"single call", &mockReader{samples: []int{1, 2, 3, 4, 5, 6}}},
		{"short reads", &mockReader{samples: []int{1, 2, 3, 4, 5, 6}, chunk: 1}},
		{"eof with data", &mockReader{samples: []int{1, 2, 3, 4, 5, 6}, eofLast: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := New(tt.reader, 8000, 2, 16, -1)
			buf := make([]byte, 2*4)

			n, err := s.ReadFrames(buf)
			if err != nil || n != 2 {
				t.Fatalf("ReadFrames() = %d, %v, want 2, nil", n, err)
			}
			if !bytes.Equal(buf, le16(1, 2, 3, 4)) {
				t.Errorf("first read = %v, want %v", buf, le16(1, 2, 3, 4))
			}

			n, err = s.ReadFrames(buf)
			if err != nil || n != 1 {
				t.Fatalf("ReadFrames() = %d, %v, want 1, nil", n, err)
			}
			if !bytes.Equal(buf[:4], le16(5, 6)) {
				t.Errorf("second read = %v, want %v", buf[:4], le16(5, 6))
			}

			n, err = s.ReadFrames(buf)
			if n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("ReadFrames() at end = %d, %v, want 0, EOF", n, err)
			}
		})
	}
}

func TestStream_StopsAtDeclaredFrames(t *testing.T) {
	t.Parallel()

	// Trailing samples past the declared length are padding.
	s := New(&mockReader{samples: []int{1, 2, 3, 4, 99, 99}}, 8000, 1, 16, 4)
	buf := make([]byte, 2*10)

	n, err := s.ReadFrames(buf)
	if err != nil || n != 4 {
		t.Fatalf("ReadFrames() = %d, %v, want 4, nil", n, err)
	}
	if n, err := s.ReadFrames(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadFrames() past declared end = %d, %v, want 0, EOF", n, err)
	}
}

func TestStream_DropsPartialFrameAtEnd(t *testing.T) {
	t.Parallel()

	s := New(&mockReader{samples: []int{1, 2, 3}}, 8000, 2, 16, -1)
	buf := make([]byte, 4*4)

	n, err := s.ReadFrames(buf)
	if err != nil || n != 1 {
		t.Errorf("ReadFrames() = %d, %v, want 1, nil", n, err)
	}
}

func TestStream_BitDepthContainers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		sample   int
		want     []byte
	}{
		{"16-bit", 16, -2, []byte{0xFE, 0xFF}},
		{"24-bit", 24, 0x123456, []byte{0x00, 0x56, 0x34, 0x12}},
		{"24-bit negative", 24, -1, []byte{0x00, 0xFF, 0xFF, 0xFF}},
		{"32-bit", 32, -0x80000000, []byte{0x00, 0x00, 0x00, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := New(&mockReader{samples: []int{tt.sample}}, 8000, 1, tt.bitDepth, 1)
			buf := make([]byte, len(tt.want))
			if _, err := s.ReadFrames(buf); err != nil {
				t.Fatalf("ReadFrames() error = %v", err)
			}
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("sample bytes = %v, want %v", buf, tt.want)
			}
		})
	}
}

func TestStream_Errors(t *testing.T) {
	t.Parallel()

	s := New(&mockReader{err: errors.New("disk on fire")}, 8000, 1, 16, -1)
	if _, err := s.ReadFrames(make([]byte, 4)); err == nil || errors.Is(err, io.EOF) {
		t.Errorf("ReadFrames() error = %v, want read failure", err)
	}

	s = New(&mockReader{err: io.ErrUnexpectedEOF}, 8000, 1, 16, -1)
	if _, err := s.ReadFrames(make([]byte, 4)); !errors.Is(err, io.EOF) {
		t.Errorf("ReadFrames() on truncated data error = %v, want EOF", err)
	}

	s = New(&mockReader{samples: []int{1}}, 8000, 2, 16, -1)
	if _, err := s.ReadFrames(make([]byte, 2)); !errors.Is(err, audio.ErrShortBuffer) {
		t.Errorf("ReadFrames(2 bytes) error = %v, want ErrShortBuffer", err)
	}
}
