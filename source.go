// SPDX-License-Identifier: EPL-2.0

package bestaudio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/ik5/bestaudio/audio"
	"github.com/ik5/bestaudio/internal/index"
	"github.com/ik5/bestaudio/internal/logger"
)

// track describes one audio track of the container.
type track struct {
	startTime float64
}

// Source is a sample-accurate random-access view of one audio track.
//
// A Source is not safe for concurrent use. Distinct sources are independent.
type Source struct {
	id   uuid.UUID
	log  *slog.Logger
	base *slog.Logger // log without source attributes
	opts Options

	path    string
	file    *os.File
	fi      os.FileInfo
	format  string
	decoder audio.Decoder
	stream  audio.Stream
	pos     int64 // next frame stream yields

	tracks   []track
	track    int
	props    audio.Properties
	exact    bool
	preroll  int64
	cache    *blockCache
	index    *index.Store
	progress ProgressFunc
	closed   bool
}

// Open opens the track of opts.SourceFile selected by opts.Track.
//
// The returned source is fully initialized. When opts.CacheMode scans on open,
// or the container does not declare its length, Open decodes the whole track
// once and reports through opts.Progress.
func Open(opts Options) (*Source, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	s := &Source{
		id:       uuid.New(),
		opts:     opts,
		path:     opts.SourceFile,
		decoder:  opts.Decoder,
		progress: opts.Progress,
		cache:    newBlockCache(DefaultMaxCacheSize),
		base:     log,
	}
	s.log = log.With("source_id", s.id.String())

	if err := s.open(); err != nil {
		_ = s.Close()
		return nil, err
	}

	s.log.Debug("source opened",
		"path", s.path,
		"format", s.format,
		"track", s.track,
		"sample_rate", s.props.SampleRate,
		"channels", s.props.Channels,
		"bits", s.props.Bits,
		"samples", s.props.NumSamples,
		"exact", s.exact,
	)
	return s, nil
}

func (s *Source) open() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	s.file = f

	if s.fi, err = f.Stat(); err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if s.decoder == nil {
		if s.format, s.decoder, err = decoderFor(f); err != nil {
			return err
		}
	} else {
		s.format = fmt.Sprintf("%T", s.decoder)
	}

	if err := s.reopen(); err != nil {
		return err
	}

	// Every supported container carries a single audio track.
	s.tracks = []track{{startTime: 0}}
	if s.track, err = s.resolveTrack(s.opts.Track); err != nil {
		return err
	}

	s.props = audio.Properties{
		Format:        s.stream.Format(),
		SampleRate:    s.stream.SampleRate(),
		Channels:      s.stream.Channels(),
		ChannelLayout: s.stream.ChannelLayout(),
		NumSamples:    s.stream.NumFrames(),
		StartTime:     s.tracks[s.track].startTime,
	}
	if err := checkProperties(s.props); err != nil {
		return err
	}
	if vf, ok := s.stream.(audio.VariableFormatter); ok && vf.VariableFormat() && !s.opts.VariableFormat {
		return fmt.Errorf("%w: set VariableFormat to open it", ErrVariableFormat)
	}

	if s.opts.AdjustDelay >= 0 {
		adj, err := s.resolveTrack(s.opts.AdjustDelay)
		if err != nil {
			return fmt.Errorf("adjust delay: %w", err)
		}
		s.props.StartTime -= s.tracks[adj].startTime
	}

	if pr, ok := s.stream.(audio.PreRoller); ok {
		s.preroll = pr.DefaultPreRoll()
	}

	return s.loadIndex()
}

// loadIndex applies the cache mode: reuse a fresh record, or scan and
// persist one.
func (s *Source) loadIndex() error {
	mode := s.opts.CacheMode
	if mode != CacheOff {
		// The database outlives this source and is shared with others.
		store, err := index.Open(index.DirFor(s.path, s.opts.CachePath), s.base)
		switch {
		case err == nil:
			s.index = store
		case mode.scansOnOpen():
			return fmt.Errorf("%w: %w", ErrIndex, err)
		default:
			s.log.Warn("index unavailable", "error", err)
		}
	}

	if s.index != nil && mode.reads() {
		rec, ok, err := s.index.Get(s.path, s.track)
		switch {
		case err != nil:
			return fmt.Errorf("%w: %w", ErrIndex, err)
		case ok && rec.Fresh(s.fi) && rec.Format == s.format && rec.NumSamples >= 0:
			s.props.NumSamples = rec.NumSamples
			s.exact = true
			s.log.Debug("index hit", "samples", rec.NumSamples)
		case ok:
			s.log.Debug("index stale", "path", s.path)
			if mode.writes() {
				if err := s.index.Delete(s.path, s.track); err != nil {
					s.log.Warn("dropping stale index", "error", err)
				}
			}
		}
	}

	if !s.exact && (mode.scansOnOpen() || s.props.NumSamples < 0) {
		if _, err := s.ExactDuration(); err != nil {
			return err
		}
	}
	return nil
}

func checkProperties(p audio.Properties) error {
	switch {
	case p.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, p.SampleRate)
	case p.Channels <= 0:
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, p.Channels)
	case p.BytesPerSample != 2 && p.BytesPerSample != 4:
		return fmt.Errorf("%w: %d bytes per sample", ErrInvalidFormat, p.BytesPerSample)
	case p.Bits <= 0 || p.Bits > p.BytesPerSample*8:
		return fmt.Errorf("%w: %d bits in %d bytes", ErrInvalidFormat, p.Bits, p.BytesPerSample)
	case p.Float && p.BytesPerSample != 4:
		return fmt.Errorf("%w: float samples need 4 bytes", ErrInvalidFormat)
	}
	return nil
}

func (s *Source) resolveTrack(t int) (int, error) {
	if t == AutoTrack {
		if len(s.tracks) == 0 {
			return 0, ErrTrackNotFound
		}
		return 0, nil
	}
	if t < 0 || t >= len(s.tracks) {
		return 0, fmt.Errorf("%w: %d", ErrTrackNotFound, t)
	}
	return t, nil
}

// Close releases the decoder, the file, the cached blocks and the index.
// Calling Close again is a no-op.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.stream != nil {
		errs = append(errs, s.stream.Close())
		s.stream = nil
	}
	if s.file != nil {
		errs = append(errs, s.file.Close())
		s.file = nil
	}
	if s.index != nil {
		errs = append(errs, s.index.Close())
		s.index = nil
	}
	s.cache.reset()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing source: %w", err)
	}
	s.log.Debug("source closed")
	return nil
}

// Track returns the resolved track index.
func (s *Source) Track() int {
	return s.track
}

// Tracks returns how many audio tracks the container has.
func (s *Source) Tracks() int {
	return len(s.tracks)
}

// Format returns the container format key, e.g. "wav".
func (s *Source) Format() string {
	return s.format
}

// AudioProperties returns the properties of the opened track.
// NumSamples changes only through ExactDuration.
func (s *Source) AudioProperties() audio.Properties {
	return s.props
}

// RelativeStartTime returns the start time of the opened track minus the
// start time of track t, in seconds.
func (s *Source) RelativeStartTime(t int) (float64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	t, err := s.resolveTrack(t)
	if err != nil {
		return 0, err
	}
	return s.tracks[s.track].startTime - s.tracks[t].startTime, nil
}

// SetMaxCacheSize bounds the decoded block cache, in bytes. 0 keeps nothing
// resident between calls.
func (s *Source) SetMaxCacheSize(bytes int64) error {
	if s.closed {
		return ErrClosed
	}
	if bytes < 0 {
		return fmt.Errorf("%w: negative cache size %d", ErrInvalidOptions, bytes)
	}
	s.cache.setMax(bytes)
	return nil
}

// CacheSize returns the bytes currently held by the block cache.
func (s *Source) CacheSize() int64 {
	return s.cache.size
}

// SetSeekPreRoll sets how many samples are decoded and discarded ahead of
// a seek target.
func (s *Source) SetSeekPreRoll(samples int64) error {
	if s.closed {
		return ErrClosed
	}
	if samples < 0 {
		return fmt.Errorf("%w: negative preroll %d", ErrInvalidOptions, samples)
	}
	s.preroll = samples
	return nil
}

// SetProgress replaces the progress callback. nil disables reporting.
func (s *Source) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// reopen restarts decoding from the first frame.
func (s *Source) reopen() error {
	if s.stream != nil {
		if err := s.stream.Close(); err != nil {
			s.log.Debug("closing stream", "error", err)
		}
		s.stream = nil
	}

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding source: %w", err)
	}
	stream, err := s.decoder.Decode(s.file)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	s.stream = stream
	s.pos = 0
	return nil
}

// invalidate drops the stream after a failure so the next access reopens it.
func (s *Source) invalidate() {
	if s.stream == nil {
		return
	}
	_ = s.stream.Close()
	s.stream = nil
}
