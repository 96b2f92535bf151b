// SPDX-License-Identifier: EPL-2.0

package shim

import (
	"io"
	"os"
	"sync"
)

// DiagnosticPrefix starts every line written to a Sink.
const DiagnosticPrefix = "what(): "

// Sink receives the descriptions of diagnosable failures. It is safe for
// concurrent use.
type Sink struct {
	mu        sync.Mutex
	w         io.Writer
	listeners []func(msg string)
}

var diagnostics = NewSink(os.Stderr)

// Diagnostics returns the process-wide sink, writing to os.Stderr by default.
func Diagnostics() *Sink {
	return diagnostics
}

// NewSink creates a sink writing to w. A nil w discards the lines.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// SetOutput replaces the writer. A nil w discards the lines; listeners
// still run.
func (s *Sink) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

// AddListener registers fn to be called with every message, in addition
// to the writer.
func (s *Sink) AddListener(fn func(msg string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Emit writes one diagnostic line for msg.
func (s *Sink) Emit(msg string) {
	s.mu.Lock()
	w := s.w
	listeners := s.listeners
	if w != nil {
		_, _ = io.WriteString(w, DiagnosticPrefix+msg+"\n")
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(msg)
	}
}
