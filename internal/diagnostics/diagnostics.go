// Package diagnostics tracks process-lifetime state for the status
// endpoint. Nothing else may depend on it.
package diagnostics

import "time"

// Tracker records the process start time once and answers uptime queries
// read-only afterwards.
type Tracker struct {
	start time.Time
}

// Start captures the current time as the process start.
func Start() *Tracker {
	return &Tracker{start: time.Now()}
}

// Uptime returns the elapsed time since Start.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.start)
}
