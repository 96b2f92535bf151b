// SPDX-License-Identifier: EPL-2.0

package shim

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ik5/bestaudio"
	"github.com/ik5/bestaudio/audio"
)

// fakeSource is a container with several audio tracks whose calls can be
// made to fail or panic.
type fakeSource struct {
	tracks   []int
	track    int
	props    audio.Properties
	progress bestaudio.ProgressFunc

	cacheSize int64
	preroll   int64
	closed    bool

	err      error // returned by fallible calls
	panicVal any   // panicked with by fallible calls
	closeErr error
}

func (f *fakeSource) fallible() error {
	if f.panicVal != nil {
		panic(f.panicVal)
	}
	return f.err
}

func (f *fakeSource) Track() int                        { return f.track }
func (f *fakeSource) AudioProperties() audio.Properties { return f.props }
func (f *fakeSource) SetProgress(fn bestaudio.ProgressFunc) {
	f.progress = fn
}

func (f *fakeSource) RelativeStartTime(track int) (float64, error) {
	if err := f.fallible(); err != nil {
		return 0, err
	}
	if !slices.Contains(f.tracks, track) {
		return 0, bestaudio.ErrTrackNotFound
	}
	return float64(f.track-track) / 10, nil
}

func (f *fakeSource) ExactDuration() (int64, error) {
	if err := f.fallible(); err != nil {
		return 0, err
	}
	if f.progress != nil && !f.progress(f.track, f.props.NumSamples, f.props.NumSamples) {
		return 0, bestaudio.ErrCanceled
	}
	return f.props.NumSamples, nil
}

func (f *fakeSource) SetMaxCacheSize(bytes int64) error {
	if err := f.fallible(); err != nil {
		return err
	}
	f.cacheSize = bytes
	return nil
}

func (f *fakeSource) SetSeekPreRoll(samples int64) error {
	if err := f.fallible(); err != nil {
		return err
	}
	f.preroll = samples
	return nil
}

func (f *fakeSource) PlanarAudio(planes [][]byte, start, count int64) error {
	if err := f.fallible(); err != nil {
		return err
	}
	for ch, p := range planes {
		for i := range count * int64(f.props.BytesPerSample) {
			p[i] = byte(ch + 1)
		}
	}
	return nil
}

func (f *fakeSource) PackedAudio(buf []byte, start, count int64) error {
	if err := f.fallible(); err != nil {
		return err
	}
	for i := range buf {
		buf[i] = 0xEE
	}
	return nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return f.closeErr
}

// fakeContainer opens fakeSources over audio tracks 1 and 3.
type fakeContainer struct {
	mu     sync.Mutex
	tracks []int
	opened []*fakeSource
	err    error
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{tracks: []int{1, 3}}
}

func (c *fakeContainer) open(opts bestaudio.Options) (AudioSource, error) {
	if c.err != nil {
		return nil, c.err
	}

	track := opts.Track
	if track == bestaudio.AutoTrack {
		track = c.tracks[0]
	}
	if !slices.Contains(c.tracks, track) {
		return nil, fmt.Errorf("%w: %d", bestaudio.ErrTrackNotFound, track)
	}

	src := &fakeSource{
		tracks: c.tracks,
		track:  track,
		props: audio.Properties{
			Format:        audio.FormatS16,
			SampleRate:    48000,
			Channels:      2,
			ChannelLayout: audio.DefaultChannelLayout(2),
			NumSamples:    96000,
			StartTime:     0.25,
		},
		progress: opts.Progress,
	}
	c.mu.Lock()
	c.opened = append(c.opened, src)
	c.mu.Unlock()
	return src, nil
}

// silentError has no description.
type silentError struct{}

func (silentError) Error() string { return "" }

var errBoom = errors.New("boom")
