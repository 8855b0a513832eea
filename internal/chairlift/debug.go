package chairlift

import (
	"io"

	"github.com/banshee-data/trackstats/internal/monitoring"
)

var logs = monitoring.NewStreams("[chairlift] ")

// SetLogWriters configures the three logging streams for the chairlift package.
// Pass nil for any writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	logs.SetWriters(ops, diag, trace)
}

// diagf logs to the diag stream (lift transitions, queue timing).
func diagf(format string, args ...interface{}) {
	logs.Diagf(format, args...)
}

// tracef logs to the trace stream (per-sample evaluation).
func tracef(format string, args ...interface{}) {
	logs.Tracef(format, args...)
}
