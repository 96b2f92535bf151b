// SPDX-License-Identifier: EPL-2.0

package bestaudio

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ik5/bestaudio/audio"
)

// CacheMode selects how the on-disk index is used. The numbering is part of
// the C interface: 0, 1 and 2 match the long-standing off, auto and
// always-write values.
type CacheMode int

const (
	// CacheOff never touches the index.
	CacheOff CacheMode = 0
	// CacheAuto reads a matching index and writes one whenever an exact
	// duration becomes known.
	CacheAuto CacheMode = 1
	// CacheReadWrite reads a matching index, otherwise scans on open and writes it.
	CacheReadWrite CacheMode = 2
	// CacheRead only reads.
	CacheRead CacheMode = 3
	// CacheWrite always scans on open and writes the result.
	CacheWrite CacheMode = 4
)

func (m CacheMode) reads() bool {
	return m == CacheAuto || m == CacheRead || m == CacheReadWrite
}

func (m CacheMode) writes() bool {
	return m == CacheAuto || m == CacheWrite || m == CacheReadWrite
}

func (m CacheMode) scansOnOpen() bool {
	return m == CacheWrite || m == CacheReadWrite
}

func (m CacheMode) String() string {
	switch m {
	case CacheOff:
		return "off"
	case CacheAuto:
		return "auto"
	case CacheRead:
		return "read"
	case CacheWrite:
		return "write"
	case CacheReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("CacheMode(%d)", int(m))
	}
}

// AdjustDelay sentinels.
const (
	AdjustDelayNone       = -2
	AdjustDelayFirstVideo = -1
)

// AutoTrack selects the first audio track.
const AutoTrack = -1

// ProgressFunc is called during full-stream scans with the number of samples
// decoded so far and the expected total. Returning false cancels the scan.
type ProgressFunc func(track int, current, total int64) bool

// Options are the parameters of Open.
type Options struct {
	SourceFile string `validate:"required"`
	// Track is a track index, or AutoTrack.
	Track int `validate:"gte=-1"`
	// AdjustDelay is the track whose start time is subtracted from StartTime,
	// or one of the AdjustDelay sentinels.
	AdjustDelay int `validate:"gte=-2"`
	// VariableFormat allows opening streams that declare a format that may
	// change mid-stream. Either way, a block whose format differs from the
	// opened properties fails delivery with ErrFormatChanged.
	VariableFormat bool
	// Threads is the decoder worker count hint; 0 picks automatically.
	// It is advisory: the shipped decoders are single-threaded.
	Threads   int       `validate:"gte=0"`
	CacheMode CacheMode `validate:"gte=0,lte=4"`
	// CachePath is the index directory; empty keeps it next to the source.
	CachePath string
	// DRCScale scales dynamic range compression gains; 0 disables.
	DRCScale float64 `validate:"gte=0"`

	Progress ProgressFunc `validate:"-"`
	Logger   *slog.Logger `validate:"-"`
	// Decoder forces a decoder instead of sniffing the container.
	Decoder audio.Decoder `validate:"-"`
}

// DefaultOptions returns options for path with automatic track selection
// and no delay adjustment.
func DefaultOptions(path string) Options {
	return Options{
		SourceFile:  path,
		Track:       AutoTrack,
		AdjustDelay: AdjustDelayNone,
		CacheMode:   CacheOff,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (o Options) validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(fields, ", "))
}
