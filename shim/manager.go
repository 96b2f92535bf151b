// SPDX-License-Identifier: EPL-2.0

// Package shim exposes audio sources through opaque handles and status codes.
//
// No entry point returns a Go error or lets a panic escape. Failures become
// StatusDiagnostic, with the description written to the diagnostic Sink, or
// StatusFailure when there is nothing to describe.
package shim

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/bestaudio"
	"github.com/ik5/bestaudio/audio"
	"github.com/ik5/bestaudio/internal/logger"
)

// AudioSource is what the manager needs from an opened source.
type AudioSource interface {
	Track() int
	AudioProperties() audio.Properties
	RelativeStartTime(track int) (float64, error)
	ExactDuration() (int64, error)
	SetMaxCacheSize(bytes int64) error
	SetSeekPreRoll(samples int64) error
	SetProgress(fn bestaudio.ProgressFunc)
	PlanarAudio(planes [][]byte, start, count int64) error
	PackedAudio(buf []byte, start, count int64) error
	Close() error
}

// Opener constructs a fully initialized source.
type Opener func(opts bestaudio.Options) (AudioSource, error)

// OpenSource opens a *bestaudio.Source.
func OpenSource(opts bestaudio.Options) (AudioSource, error) {
	src, err := bestaudio.Open(opts)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// Handle identifies an open source. The zero Handle is never valid.
type Handle uintptr

// Manager owns the sources behind handles.
type Manager struct {
	open Opener
	sink *Sink
	log  *slog.Logger

	mu      sync.Mutex
	next    Handle
	sources map[Handle]AudioSource
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide manager, opening *bestaudio.Source values
// and reporting to Diagnostics.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager(OpenSource, nil, nil)
	})
	return defaultManager
}

// NewManager creates a manager. A nil sink uses Diagnostics; a nil logger
// discards.
func NewManager(open Opener, sink *Sink, log *slog.Logger) *Manager {
	if sink == nil {
		sink = Diagnostics()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{
		open:    open,
		sink:    sink,
		log:     log,
		sources: make(map[Handle]AudioSource),
	}
}

// SetLogger replaces the logger. It also becomes the default logger of
// sources opened without one.
func (m *Manager) SetLogger(log *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = log
}

// Len returns the number of open handles.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}

func (m *Manager) logger() *slog.Logger {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log
}

func (m *Manager) add(src AudioSource) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	h := m.next
	m.sources[h] = src
	return h
}

func (m *Manager) get(h Handle) (AudioSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.sources[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return src, nil
}

func (m *Manager) remove(h Handle) (AudioSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.sources[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	delete(m.sources, h)
	return src, nil
}

// call runs fn and converts its error or panic to a Status.
func (m *Manager) call(op string, fn func() error) (status Status) {
	defer func() {
		if r := recover(); r != nil {
			m.logger().Error("recovered panic", "op", op, "panic", r)
			status = m.recovered(r)
		}
	}()

	if err := fn(); err != nil {
		m.logger().Debug("call failed", "op", op, "error", err)
		return m.fail(err)
	}
	return StatusOK
}

func (m *Manager) fail(err error) Status {
	return m.describe(err.Error())
}

func (m *Manager) recovered(r any) Status {
	switch v := r.(type) {
	case error:
		return m.fail(v)
	case string:
		return m.describe(v)
	default:
		return StatusFailure
	}
}

func (m *Manager) describe(msg string) Status {
	if msg == "" {
		return StatusFailure
	}
	m.sink.Emit(msg)
	return StatusDiagnostic
}

// with runs fn against the source behind h.
func (m *Manager) with(op string, h Handle, fn func(src AudioSource) error) Status {
	return m.call(op, func() error {
		src, err := m.get(h)
		if err != nil {
			return err
		}
		return fn(src)
	})
}
