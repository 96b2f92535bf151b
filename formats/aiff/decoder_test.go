// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"testing"

	"github.com/ik5/bestaudio/audio"
)

// createAIFFFile builds an AIFF file around big-endian PCM data.
func createAIFFFile(sampleRate, channels, bitDepth int, pcm []byte) []byte {
	frames := len(pcm) / (channels * bitDepth / 8)

	comm := new(bytes.Buffer)
	binary.Write(comm, binary.BigEndian, int16(channels))
	binary.Write(comm, binary.BigEndian, uint32(frames))
	binary.Write(comm, binary.BigEndian, int16(bitDepth))
	// 80-bit IEEE extended sample rate.
	exp := bits.Len(uint(sampleRate)) - 1
	binary.Write(comm, binary.BigEndian, uint16(16383+exp))
	binary.Write(comm, binary.BigEndian, uint64(sampleRate)<<(63-exp))

	ssnd := new(bytes.Buffer)
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // block size
	ssnd.Write(pcm)

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())
	if ssnd.Len()%2 == 1 {
		body.WriteByte(0)
	}

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	binary.Write(out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func pcm16BE(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.BigEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func pcm16LE(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func readAll(t *testing.T, src audio.Stream, frames int) []byte {
	t.Helper()

	frameSize := src.Channels() * src.Format().BytesPerSample
	buf := make([]byte, frames*frameSize)
	var out []byte
	for {
		n, err := src.ReadFrames(buf)
		out = append(out, buf[:n*frameSize]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadFrames() error = %v", err)
		}
	}
}

func TestDecoder_Stereo16(t *testing.T) {
	t.Parallel()

	samples := []int16{1, -1, 1000, -1000, 32767, -32768}
	src, err := Decoder{}.Decode(bytes.NewReader(createAIFFFile(44100, 2, 16, pcm16BE(samples...))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.NumFrames() != 3 {
		t.Errorf("NumFrames() = %d, want 3", src.NumFrames())
	}
	if src.Format() != audio.FormatS16 {
		t.Errorf("Format() = %+v, want %+v", src.Format(), audio.FormatS16)
	}

	// Big-endian input is delivered little-endian.
	if got := readAll(t, src, 2); !bytes.Equal(got, pcm16LE(samples...)) {
		t.Errorf("decoded = %v, want %v", got, pcm16LE(samples...))
	}
}

func TestDecoder_24Bit(t *testing.T) {
	t.Parallel()

	pcm := []byte{0x12, 0x34, 0x56, 0xFF, 0xFF, 0xFE}
	src, err := Decoder{}.Decode(bytes.NewReader(createAIFFFile(8000, 1, 24, pcm)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.Format() != audio.FormatS24 {
		t.Errorf("Format() = %+v, want %+v", src.Format(), audio.FormatS24)
	}

	want := []byte{0x00, 0x56, 0x34, 0x12, 0x00, 0xFE, 0xFF, 0xFF}
	if got := readAll(t, src, 4); !bytes.Equal(got, want) {
		t.Errorf("decoded = %v, want %v", got, want)
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not aiff", []byte("This is not AIFF data"), ErrNotAiffFile},
		{"empty", nil, ErrNotAiffFile},
		{"8-bit", createAIFFFile(8000, 1, 8, []byte{1, 2, 3, 4}), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	samples := []int16{5, 6, 7, 8}
	r := io.MultiReader(bytes.NewReader(createAIFFFile(22050, 1, 16, pcm16BE(samples...))))

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := readAll(t, src, 3); !bytes.Equal(got, pcm16LE(samples...)) {
		t.Errorf("decoded = %v, want %v", got, pcm16LE(samples...))
	}
}
