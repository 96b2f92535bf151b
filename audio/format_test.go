// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math/bits"
	"testing"
)

func TestIntFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		want Format
	}{
		{8, Format{Bits: 8, BytesPerSample: 2}},
		{16, FormatS16},
		{20, Format{Bits: 20, BytesPerSample: 4}},
		{24, FormatS24},
		{32, FormatS32},
	}

	for _, tt := range tests {
		if got := IntFormat(tt.bits); got != tt.want {
			t.Errorf("IntFormat(%d) = %+v, want %+v", tt.bits, got, tt.want)
		}
	}
}

func TestProperties_FrameSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		props Properties
		want  int
	}{
		{"stereo s16", Properties{Format: FormatS16, Channels: 2}, 4},
		{"5.1 f32", Properties{Format: FormatF32, Channels: 6}, 24},
		{"mono s24", Properties{Format: FormatS24, Channels: 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.props.FrameSize(); got != tt.want {
				t.Errorf("FrameSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultChannelLayout(t *testing.T) {
	t.Parallel()

	for n := range 10 {
		got := DefaultChannelLayout(n)
		switch n {
		case 0, 7, 9:
			if got != 0 {
				t.Errorf("DefaultChannelLayout(%d) = %#x, want 0", n, got)
			}
		default:
			if c := bits.OnesCount64(got); c != n {
				t.Errorf("DefaultChannelLayout(%d) has %d speakers", n, c)
			}
		}
	}

	if got := DefaultChannelLayout(1); got != SpeakerFrontCenter {
		t.Errorf("mono layout = %#x, want front center", got)
	}
	if got := DefaultChannelLayout(6); got&SpeakerLowFrequency == 0 {
		t.Errorf("5.1 layout = %#x, missing LFE", got)
	}
}
