// SPDX-License-Identifier: EPL-2.0

package bestaudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/bestaudio/internal/index"
	"golang.org/x/sync/errgroup"
)

// ExactDuration decodes the whole track once to count its samples, replacing
// the estimate in AudioProperties. Later calls return the known count.
//
// Progress is reported on the calling goroutine; a callback returning false
// cancels the scan with ErrCanceled and leaves the estimate in place.
func (s *Source) ExactDuration() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.exact {
		return s.props.NumSamples, nil
	}

	total, err := s.scan()
	if err != nil {
		return 0, err
	}

	s.props.NumSamples = total
	s.exact = true
	s.log.Debug("exact duration", "samples", total)

	if s.index != nil && s.opts.CacheMode.writes() {
		rec := index.NewRecord(s.fi, s.track, s.format, total)
		if err := s.index.Put(s.path, s.track, rec); err != nil {
			s.log.Warn("storing index", "error", err)
		}
	}
	return total, nil
}

// scan counts frames on a decoder of its own so the delivery stream keeps
// its position.
func (s *Source) scan() (int64, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return 0, fmt.Errorf("opening source for scan: %w", err)
	}
	defer f.Close()

	stream, err := s.decoder.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer stream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	progress := make(chan int64, 1)
	var total int64
	g.Go(func() error {
		defer close(progress)

		buf := make([]byte, blockFrames*s.props.FrameSize())
		for {
			if err := gctx.Err(); err != nil {
				return err
			}

			n, err := stream.ReadFrames(buf)
			total += int64(n)
			if errors.Is(err, io.EOF) || (err == nil && n == 0) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%w: scanning at frame %d: %w", ErrDecode, total, err)
			}

			select {
			case progress <- total:
			default:
			}
		}
	})

	canceled := false
	for cur := range progress {
		if canceled {
			continue
		}
		if !s.report(cur, max(s.props.NumSamples, cur)) {
			canceled = true
			cancel()
		}
	}

	err = g.Wait()
	if canceled {
		s.log.Debug("scan canceled")
		return 0, ErrCanceled
	}
	if err != nil {
		return 0, err
	}
	if !s.report(total, total) {
		return 0, ErrCanceled
	}
	return total, nil
}

func (s *Source) report(current, total int64) bool {
	if s.progress == nil {
		return true
	}
	return s.progress(s.track, current, total)
}
