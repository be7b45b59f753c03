package diagnostics

import (
	"testing"
	"time"
)

func TestUptime(t *testing.T) {
	tracker := Start()
	time.Sleep(10 * time.Millisecond)

	got := tracker.Uptime()
	if got < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, want at least 10ms", got)
	}
	if got > time.Minute {
		t.Errorf("Uptime() = %v, implausibly large", got)
	}
}
