// SPDX-License-Identifier: EPL-2.0

package shim

import (
	"github.com/ik5/bestaudio"
)

// New opens a source. On failure Value is the zero Handle.
func (m *Manager) New(opts bestaudio.Options) PointerWithError {
	var h Handle
	status := m.call("new", func() error {
		if opts.Logger == nil {
			opts.Logger = m.logger()
		}
		src, err := m.open(opts)
		if err != nil {
			return err
		}
		if src == nil {
			return ErrNoSource
		}
		h = m.add(src)
		return nil
	})
	return PointerWithError{Error: status, Value: h}
}

// Delete closes the source behind h. The handle is released even when
// closing fails.
func (m *Manager) Delete(h Handle) Status {
	return m.call("delete", func() error {
		src, err := m.remove(h)
		if err != nil {
			return err
		}
		return src.Close()
	})
}

// GetTrack returns the resolved track index.
func (m *Manager) GetTrack(h Handle) IntWithError {
	var r IntWithError
	r.Error = m.with("get_track", h, func(src AudioSource) error {
		r.Value = src.Track()
		return nil
	})
	return r
}

// SetMaxCacheSize bounds the decoded cache of h, in bytes.
func (m *Manager) SetMaxCacheSize(h Handle, bytes int64) Status {
	return m.with("set_max_cache_size", h, func(src AudioSource) error {
		return src.SetMaxCacheSize(bytes)
	})
}

// SetSeekPreRoll sets the number of samples decoded and discarded before a
// seek target.
func (m *Manager) SetSeekPreRoll(h Handle, samples int64) Status {
	return m.with("set_seek_preroll", h, func(src AudioSource) error {
		return src.SetSeekPreRoll(samples)
	})
}

// GetRelativeStartTime returns the start time of h minus that of track, in seconds.
func (m *Manager) GetRelativeStartTime(h Handle, track int) DoubleWithError {
	var r DoubleWithError
	r.Error = m.with("get_relative_start_time", h, func(src AudioSource) error {
		v, err := src.RelativeStartTime(track)
		r.Value = v
		return err
	})
	return r
}

// GetAudioProperties returns the properties of h.
func (m *Manager) GetAudioProperties(h Handle) AudioPropertiesWithError {
	var r AudioPropertiesWithError
	status := m.with("get_audio_properties", h, func(src AudioSource) error {
		r = newAudioProperties(src.AudioProperties())
		return nil
	})
	r.Error = status
	return r
}

// GetExactDuration scans h to count its samples exactly.
func (m *Manager) GetExactDuration(h Handle) Int64WithError {
	var r Int64WithError
	r.Error = m.with("get_exact_duration", h, func(src AudioSource) error {
		v, err := src.ExactDuration()
		r.Value = v
		return err
	})
	return r
}

// GetPlanarAudio writes count samples from start into one plane per channel.
func (m *Manager) GetPlanarAudio(h Handle, planes [][]byte, start, count int64) Status {
	return m.with("get_planar_audio", h, func(src AudioSource) error {
		return src.PlanarAudio(planes, start, count)
	})
}

// GetPackedAudio writes count interleaved samples from start into buf.
func (m *Manager) GetPackedAudio(h Handle, buf []byte, start, count int64) Status {
	return m.with("get_packed_audio", h, func(src AudioSource) error {
		return src.PackedAudio(buf, start, count)
	})
}

// SetProgressCallback replaces the progress callback of h. nil disables it.
func (m *Manager) SetProgressCallback(h Handle, fn bestaudio.ProgressFunc) Status {
	return m.with("set_progress_callback", h, func(src AudioSource) error {
		src.SetProgress(fn)
		return nil
	})
}
