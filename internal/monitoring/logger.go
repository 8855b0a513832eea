// Package monitoring holds the logging plumbing shared by the track
// statistics packages.
//
// Each package that logs keeps a Streams value behind its own debug.go with
// three destinations:
//   - ops: actionable problems (rejected samples, contract violations)
//   - diag: day-to-day diagnostics (lift transitions, segment merges)
//   - trace: per-sample telemetry
//
// All streams are muted until a writer is attached.
package monitoring

import (
	"io"
	"log"
	"sync"
)

// Logf is the package-level diagnostic logger used by binaries. It defaults
// to log.Printf but may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Streams is a set of ops/diag/trace loggers sharing a prefix.
type Streams struct {
	prefix string

	mu    sync.RWMutex
	ops   *log.Logger
	diag  *log.Logger
	trace *log.Logger
}

// NewStreams returns muted streams that will prefix every line with prefix.
func NewStreams(prefix string) *Streams {
	return &Streams{prefix: prefix}
}

// SetWriters attaches writers to the three streams. A nil writer mutes
// that stream.
func (s *Streams) SetWriters(ops, diag, trace io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = newLogger(s.prefix, ops)
	s.diag = newLogger(s.prefix, diag)
	s.trace = newLogger(s.prefix, trace)
}

func newLogger(prefix string, w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

// Opsf logs to the ops stream.
func (s *Streams) Opsf(format string, args ...interface{}) {
	s.printf(func() *log.Logger { return s.ops }, format, args...)
}

// Diagf logs to the diag stream.
func (s *Streams) Diagf(format string, args ...interface{}) {
	s.printf(func() *log.Logger { return s.diag }, format, args...)
}

// Tracef logs to the trace stream.
func (s *Streams) Tracef(format string, args ...interface{}) {
	s.printf(func() *log.Logger { return s.trace }, format, args...)
}

func (s *Streams) printf(pick func() *log.Logger, format string, args ...interface{}) {
	s.mu.RLock()
	l := pick()
	s.mu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}
