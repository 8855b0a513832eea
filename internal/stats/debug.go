package stats

import (
	"io"

	"github.com/banshee-data/trackstats/internal/monitoring"
)

var logs = monitoring.NewStreams("[stats] ")

// SetLogWriters configures the three logging streams for the stats package.
// Pass nil for any writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	logs.SetWriters(ops, diag, trace)
}

// opsf logs to the ops stream (rejected samples, contract violations).
func opsf(format string, args ...interface{}) {
	logs.Opsf(format, args...)
}

// diagf logs to the diag stream (queue activity restarts).
func diagf(format string, args ...interface{}) {
	logs.Diagf(format, args...)
}

// tracef logs to the trace stream (per-sample updates).
func tracef(format string, args ...interface{}) {
	logs.Tracef(format, args...)
}
