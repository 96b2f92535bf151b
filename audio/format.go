// SPDX-License-Identifier: EPL-2.0

package audio

// Format describes one decoded sample of one channel.
type Format struct {
	// Float is true for IEEE float samples.
	Float bool
	// Bits is the number of valid bits per sample.
	Bits int
	// BytesPerSample is the container size per sample per channel.
	BytesPerSample int
}

// Properties describes a decoded audio track.
type Properties struct {
	Format

	SampleRate    int
	Channels      int
	ChannelLayout uint64
	// NumSamples is estimated by the decoder unless refined by a full scan.
	NumSamples int64
	// StartTime is in seconds, relative to the container start.
	StartTime float64
}

// FrameSize is the packed stride of one sample across all channels, in bytes.
func (p Properties) FrameSize() int {
	return p.Channels * p.BytesPerSample
}

// Common native formats.
var (
	FormatS16 = Format{Bits: 16, BytesPerSample: 2}
	FormatS24 = Format{Bits: 24, BytesPerSample: 4} // left-justified in 32 bits
	FormatS32 = Format{Bits: 32, BytesPerSample: 4}
	FormatF32 = Format{Float: true, Bits: 32, BytesPerSample: 4}
)

// IntFormat returns the native container format for integer PCM of the given bit depth.
// Depths above 16 are widened to 32-bit containers, left-justified.
func IntFormat(bits int) Format {
	switch {
	case bits <= 16:
		return Format{Bits: bits, BytesPerSample: 2}
	default:
		return Format{Bits: bits, BytesPerSample: 4}
	}
}

// Speaker positions, WAVE_FORMAT_EXTENSIBLE bit order.
const (
	SpeakerFrontLeft uint64 = 1 << iota
	SpeakerFrontRight
	SpeakerFrontCenter
	SpeakerLowFrequency
	SpeakerBackLeft
	SpeakerBackRight
	SpeakerFrontLeftOfCenter
	SpeakerFrontRightOfCenter
	SpeakerBackCenter
	SpeakerSideLeft
	SpeakerSideRight
)

// DefaultChannelLayout returns the conventional layout for n channels,
// or 0 when there is none.
func DefaultChannelLayout(n int) uint64 {
	switch n {
	case 1:
		return SpeakerFrontCenter
	case 2:
		return SpeakerFrontLeft | SpeakerFrontRight
	case 3:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter
	case 4:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerBackLeft | SpeakerBackRight
	case 5:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter | SpeakerBackLeft | SpeakerBackRight
	case 6:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter | SpeakerLowFrequency |
			SpeakerBackLeft | SpeakerBackRight
	case 8:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter | SpeakerLowFrequency |
			SpeakerBackLeft | SpeakerBackRight | SpeakerSideLeft | SpeakerSideRight
	default:
		return 0
	}
}
