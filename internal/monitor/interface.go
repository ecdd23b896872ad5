package monitor

import (
	"strings"
	"time"

	"codeberg.org/mutker/sysmon/internal/history"
	"codeberg.org/mutker/sysmon/internal/logger"
	"codeberg.org/mutker/sysmon/internal/memory"
)

// Sink receives everything the consumer derives. Calls come from a single
// goroutine; an error aborts the run.
type Sink interface {
	// Sessions is called once, during round 0, before Round(0).
	Sessions(s Sessions) error
	Round(r Round) error
}

// Round is the result of one sampling round.
type Round struct {
	Index      int
	CPUPercent float64
	Memory     memory.Snapshot
	MemoryLine string
	Timestamp  time.Time
}

// Sessions is the user session report, sent once per run.
type Sessions struct {
	Count int
	Blob  string
}

// Lines splits the blob into one entry per session.
func (s Sessions) Lines() []string {
	if s.Blob == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s.Blob, "\n"), "\n")
}

type Options struct {
	Samples  int
	Interval time.Duration

	// History, when set, receives one snapshot per round.
	History history.Recorder
	Logger  logger.Logger
}
