package monitor_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/history"
	"codeberg.org/mutker/sysmon/internal/logger"
	"codeberg.org/mutker/sysmon/internal/monitor"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/platform/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu        sync.Mutex
	rounds    []monitor.Round
	sessions  []monitor.Sessions
	failRound int
}

func (s *recordingSink) Sessions(sessions monitor.Sessions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sessions)
	return nil
}

func (s *recordingSink) Round(r monitor.Round) error {
	s.mu.Lock()
	s.rounds = append(s.rounds, r)
	s.mu.Unlock()
	if s.failRound > 0 && r.Index == s.failRound {
		return fmt.Errorf("display gone")
	}
	return nil
}

// tickingSource advances the counters by a fixed step on every read.
type tickingSource struct {
	mu     sync.Mutex
	sample platform.RawCPUSample
}

func (s *tickingSource) next() platform.RawCPUSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sample.User += 30
	s.sample.System += 20
	s.sample.Idle += 50
	return s.sample
}

func expectSource(ctrl *gomock.Controller) *mocks.MockSource {
	src := mocks.NewMockSource(ctrl)
	ticks := &tickingSource{}

	src.EXPECT().CPUCounters(gomock.Any()).DoAndReturn(func(context.Context) (platform.RawCPUSample, error) {
		return ticks.next(), nil
	}).AnyTimes()
	src.EXPECT().MemoryInfo(gomock.Any()).Return(platform.MemoryInfo{
		TotalPhys: 16 << 30,
		FreePhys:  4 << 30,
		TotalSwap: 2 << 30,
		FreeSwap:  1 << 30,
	}, nil).AnyTimes()
	src.EXPECT().UserSessions(gomock.Any()).Return([]platform.UserSession{
		{Username: "alice", Terminal: "pts/0", Host: "10.0.0.1"},
		{Username: "bob", Terminal: "tty1"},
	}, nil).AnyTimes()

	return src
}

func TestRunEndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := expectSource(ctrl)

	store, err := history.NewService(history.Config{Enabled: true, Size: 10})
	require.NoError(t, err)

	sink := &recordingSink{}
	err = monitor.Run(context.Background(), monitor.Options{
		Samples:  3,
		Interval: 0,
		History:  store,
		Logger:   logger.Nop(),
	}, src, sink)
	require.NoError(t, err)

	require.Len(t, sink.rounds, 3)
	for i, r := range sink.rounds {
		assert.Equal(t, i, r.Index)
		assert.GreaterOrEqual(t, r.CPUPercent, 0.0)
		assert.LessOrEqual(t, r.CPUPercent, 100.0)
		assert.Equal(t, "12.00 GB / 16.00 GB  -- 13.00 GB / 18.00 GB", r.MemoryLine)
		assert.InDelta(t, 12.0, r.Memory.PhysUsedGB, 1e-9)
		assert.InDelta(t, 1.0, r.Memory.SwapUsedGB, 1e-9)
		assert.False(t, r.Timestamp.IsZero())
	}

	require.Len(t, sink.sessions, 1)
	assert.Equal(t, 2, sink.sessions[0].Count)
	assert.Equal(t, []string{"alice\t pts/0 (10.0.0.1)", "bob\t tty1 ()"}, sink.sessions[0].Lines())

	assert.Equal(t, 3, store.Len())
	assert.Len(t, store.CPUSeries(), 3)
}

func TestRunConvergesToSteadyLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := expectSource(ctrl)

	sink := &recordingSink{}
	require.NoError(t, monitor.Run(context.Background(), monitor.Options{
		Samples: 20,
		Logger:  logger.Nop(),
	}, src, sink))

	// every interval advances 50 busy and 50 idle ticks
	last := sink.rounds[len(sink.rounds)-1]
	assert.InDelta(t, 50.0, last.CPUPercent, 0.5)
}

func TestRunSinkFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := expectSource(ctrl)

	sink := &recordingSink{failRound: 1}
	err := monitor.Run(context.Background(), monitor.Options{
		Samples:  50,
		Interval: 10 * time.Millisecond,
		Logger:   logger.Nop(),
	}, src, sink)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrMonitorAbort))
	assert.True(t, errors.IsCode(err, errors.ErrRenderFailed))
	assert.Len(t, sink.rounds, 2)
}

func TestRunCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := expectSource(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the CPU producer is asleep between its two snapshots when this fires
	time.AfterFunc(50*time.Millisecond, cancel)

	sink := &recordingSink{}
	done := make(chan error, 1)
	go func() {
		done <- monitor.Run(ctx, monitor.Options{
			Samples:  5,
			Interval: time.Hour,
			Logger:   logger.Nop(),
		}, src, sink)
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCanceled))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, sink.rounds)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	err := monitor.Run(context.Background(), monitor.Options{Samples: 0}, src, &recordingSink{})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidSamples))

	err = monitor.Run(context.Background(), monitor.Options{Samples: 1, Interval: -time.Second}, src, &recordingSink{})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInterval))
}

func TestSessionsLines(t *testing.T) {
	assert.Nil(t, monitor.Sessions{}.Lines())
	assert.Equal(t, []string{"a\t b (c)"}, monitor.Sessions{Count: 1, Blob: "a\t b (c)\n"}.Lines())
}
