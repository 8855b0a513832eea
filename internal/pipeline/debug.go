package pipeline

import (
	"io"

	"github.com/banshee-data/trackstats/internal/monitoring"
)

var logs = monitoring.NewStreams("[pipeline] ")

// SetLogWriters configures the three logging streams for the pipeline package.
// Pass nil for any writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	logs.SetWriters(ops, diag, trace)
}

// opsf logs to the ops stream (failed runs).
func opsf(format string, args ...interface{}) {
	logs.Opsf(format, args...)
}

// diagf logs to the diag stream (run and merge summaries).
func diagf(format string, args ...interface{}) {
	logs.Diagf(format, args...)
}
