// SPDX-License-Identifier: EPL-2.0

package shim

import "github.com/ik5/bestaudio/audio"

// Status is the outcome of an entry point.
type Status int

const (
	// StatusOK means the call succeeded and its value is valid.
	StatusOK Status = 0
	// StatusFailure is a failure without a description.
	StatusFailure Status = 1
	// StatusDiagnostic is a failure whose description was written to the
	// diagnostic sink.
	StatusDiagnostic Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailure:
		return "failure"
	case StatusDiagnostic:
		return "diagnostic failure"
	default:
		return "unknown status"
	}
}

// IntWithError carries an int result. Value is unspecified unless Error is StatusOK.
type IntWithError struct {
	Error Status
	Value int
}

// Int64WithError carries an int64 result.
type Int64WithError struct {
	Error Status
	Value int64
}

// DoubleWithError carries a float64 result.
type DoubleWithError struct {
	Error Status
	Value float64
}

// PointerWithError carries a handle.
type PointerWithError struct {
	Error Status
	Value Handle
}

// AudioFormat is the per-sample part of the audio properties.
type AudioFormat struct {
	Float          bool
	Bits           int
	BytesPerSample int
}

// AudioPropertiesWithError carries the audio properties of a source.
type AudioPropertiesWithError struct {
	Error         Status
	AF            AudioFormat
	SampleRate    int
	Channels      int
	ChannelLayout uint64
	NumSamples    int64
	StartTime     float64
}

func newAudioProperties(p audio.Properties) AudioPropertiesWithError {
	return AudioPropertiesWithError{
		AF: AudioFormat{
			Float:          p.Float,
			Bits:           p.Bits,
			BytesPerSample: p.BytesPerSample,
		},
		SampleRate:    p.SampleRate,
		Channels:      p.Channels,
		ChannelLayout: p.ChannelLayout,
		NumSamples:    p.NumSamples,
		StartTime:     p.StartTime,
	}
}
