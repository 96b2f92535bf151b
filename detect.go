// SPDX-License-Identifier: EPL-2.0

package bestaudio

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ik5/bestaudio/audio"
	"github.com/ik5/bestaudio/formats/aiff"
	"github.com/ik5/bestaudio/formats/flac"
	"github.com/ik5/bestaudio/formats/mp3"
	"github.com/ik5/bestaudio/formats/vorbis"
	"github.com/ik5/bestaudio/formats/wav"
)

// Format keys of the built-in decoders.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatFLAC   = "flac"
	FormatMP3    = "mp3"
	FormatVorbis = "vorbis"
)

var mimeFormats = []struct {
	mime   string
	format string
}{
	{"audio/wav", FormatWAV},
	{"audio/aiff", FormatAIFF},
	{"audio/flac", FormatFLAC},
	{"audio/mpeg", FormatMP3},
	{"audio/ogg", FormatVorbis},
	{"application/ogg", FormatVorbis},
}

var registry = newRegistry()

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(FormatWAV, wav.Decoder{})
	reg.Register(FormatAIFF, aiff.Decoder{})
	reg.Register(FormatFLAC, flac.Decoder{})
	reg.Register(FormatMP3, mp3.Decoder{})
	reg.Register(FormatVorbis, vorbis.Decoder{})
	return reg
}

// Registry returns the decoders Open chooses from. Registering a decoder
// under a built-in key replaces it.
func Registry() *audio.Registry {
	return registry
}

// Detect sniffs the container in r and returns its format key.
// r is rewound to the start.
func Detect(r io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if _, serr := r.Seek(0, io.SeekStart); serr != nil {
		return "", fmt.Errorf("rewinding: %w", serr)
	}
	if err != nil {
		return "", fmt.Errorf("sniffing container: %w", err)
	}

	for m := mt; m != nil; m = m.Parent() {
		for _, f := range mimeFormats {
			if m.Is(f.mime) {
				return f.format, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
}

func decoderFor(r io.ReadSeeker) (string, audio.Decoder, error) {
	format, err := Detect(r)
	if err != nil {
		return "", nil, err
	}

	dec, ok := registry.Get(format)
	if !ok {
		return "", nil, fmt.Errorf("%w: no decoder for %s", ErrUnsupportedFormat, format)
	}
	return format, dec, nil
}
