// Package history keeps an in-memory rolling window of derived metrics.
package history

import (
	"context"
	"sync"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/logger"
)

type service struct {
	mu     sync.RWMutex
	window *Window[Snapshot]
	closed bool
}

// No-op implementation
type noopStore struct{}

func NewService(cfg Config) (Store, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If history is disabled, return a no-op store
	if !cfg.Enabled {
		logger.Debug().Msg("History disabled, using no-op store")
		return &noopStore{}, nil
	}

	logger.Debug().
		Int("size", cfg.Size).
		Msg("History window initialized")

	return &service{
		window: NewWindow[Snapshot](cfg.Size),
	}, nil
}

func (s *service) Record(ctx context.Context, snapshot *Snapshot) error {
	errFactory := errors.New()

	if snapshot == nil {
		return errFactory.New(ErrInvalidSnapshot)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrCanceled, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errFactory.Wrap(ErrRecord, errFactory.New(ErrClosed))
	}
	s.window.Push(*snapshot)

	return nil
}

func (s *service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *service) Snapshots() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window.Values()
}

func (s *service) CPUSeries() []float64 {
	snaps := s.Snapshots()
	out := make([]float64, len(snaps))
	for i, snap := range snaps {
		out[i] = snap.CPUPercent
	}
	return out
}

// MemorySeries returns virtual memory usage in GB.
func (s *service) MemorySeries() []float64 {
	snaps := s.Snapshots()
	out := make([]float64, len(snaps))
	for i, snap := range snaps {
		out[i] = snap.Memory.VirtualUsedGB()
	}
	return out
}

func (s *service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window.Len()
}

// No-op implementation
func (*noopStore) Record(_ context.Context, _ *Snapshot) error { return nil }
func (*noopStore) Close() error                                 { return nil }
func (*noopStore) Snapshots() []Snapshot                        { return nil }
func (*noopStore) CPUSeries() []float64                         { return nil }
func (*noopStore) MemorySeries() []float64                      { return nil }
func (*noopStore) Len() int                                     { return 0 }
