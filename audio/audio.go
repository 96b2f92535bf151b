// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Stream is a sequential decoder producing native packed PCM.
type Stream interface {
	// Format of a single decoded sample.
	Format() Format
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ChannelLayout bitmask, see the Speaker* constants.
	ChannelLayout() uint64
	// NumFrames is the header-derived frame count, or -1 when unknown.
	NumFrames() int64

	// ReadFrames fills dst with whole interleaved frames in the native format.
	// Returns the number of frames written (not bytes). When n == 0 with err == io.EOF, the stream is finished.
	ReadFrames(dst []byte) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Seeker is implemented by streams that can reposition without decoding from the start.
type Seeker interface {
	SeekFrame(frame int64) error
}

// PreRoller reports how many frames a stream wants decoded and discarded
// ahead of a seek target before its output converges.
type PreRoller interface {
	DefaultPreRoll() int64
}

// VariableFormatter is implemented by streams that know whether their
// format, rate or channel count may change mid-stream.
type VariableFormatter interface {
	VariableFormat() bool
}

// Decoder constructs a Stream from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Stream, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "vorbis").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	return keys
}
