package history

import (
	"context"
	"time"

	"codeberg.org/mutker/sysmon/internal/memory"
)

// Recorder accepts one snapshot per sampling round.
type Recorder interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Reader exposes the retained window, oldest first.
type Reader interface {
	Snapshots() []Snapshot
	CPUSeries() []float64
	MemorySeries() []float64
	Len() int
}

// Store is a Recorder whose contents can be read back.
type Store interface {
	Recorder
	Reader
}

// Snapshot holds the derived metrics of one round.
type Snapshot struct {
	Timestamp  time.Time
	Round      int
	CPUPercent float64
	Memory     memory.Snapshot
}
