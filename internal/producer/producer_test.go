package producer_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/logger"
	"codeberg.org/mutker/sysmon/internal/memory"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/platform/mocks"
	"codeberg.org/mutker/sysmon/internal/producer"
	"codeberg.org/mutker/sysmon/internal/transport"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is an in-memory Sender. failAt makes the n-th write (1-based) fail.
type recorder struct {
	mu     sync.Mutex
	frames [][]byte
	closed int
	failAt int
}

func (r *recorder) WriteFrame(payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAt > 0 && len(r.frames)+1 == r.failAt {
		return apperrors.New().Wrap(apperrors.ErrTransport, io.ErrClosedPipe)
	}
	r.frames = append(r.frames, append([]byte(nil), payload...))
	return nil
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func TestCPUProducer(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	samples := []platform.RawCPUSample{
		{User: 1, Idle: 10},
		{User: 2, Idle: 20},
		{User: 3, Idle: 30},
		{User: 4, Idle: 40},
	}
	calls := make([]*gomock.Call, 0, len(samples))
	for _, s := range samples {
		calls = append(calls, src.EXPECT().CPUCounters(gomock.Any()).Return(s, nil))
	}
	gomock.InOrder(calls...)

	prev, curr := &recorder{}, &recorder{}
	p := producer.NewCPU(producer.Config{Samples: 2}, src, prev, curr, logger.Nop())

	assert.Equal(t, producer.KindCPU, p.Kind())
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, prev.frames, 2)
	require.Len(t, curr.frames, 2)
	for i := 0; i < 2; i++ {
		got, err := transport.DecodeCPU(prev.frames[i])
		require.NoError(t, err)
		assert.Equal(t, samples[2*i], got)

		got, err = transport.DecodeCPU(curr.frames[i])
		require.NoError(t, err)
		assert.Equal(t, samples[2*i+1], got)
	}

	assert.Equal(t, 1, prev.closed)
	assert.Equal(t, 1, curr.closed)
}

func TestCPUProducerSendsZeroOnSampleError(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().CPUCounters(gomock.Any()).Return(platform.RawCPUSample{}, errors.New("no stat")).Times(2)

	prev, curr := &recorder{}, &recorder{}
	p := producer.NewCPU(producer.Config{Samples: 1}, src, prev, curr, logger.Nop())
	require.NoError(t, p.Run(context.Background()))

	got, err := transport.DecodeCPU(prev.frames[0])
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCPUProducerWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().CPUCounters(gomock.Any()).Return(platform.RawCPUSample{User: 1}, nil).AnyTimes()

	prev, curr := &recorder{}, &recorder{failAt: 2}
	p := producer.NewCPU(producer.Config{Samples: 5}, src, prev, curr, logger.Nop())

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrTransport))

	assert.Len(t, prev.frames, 2)
	assert.Len(t, curr.frames, 1)
	assert.Equal(t, 1, prev.closed)
	assert.Equal(t, 1, curr.closed)
}

func TestMemoryProducer(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	raw := platform.MemoryInfo{TotalPhys: 16 << 30, FreePhys: 4 << 30, TotalSwap: 2 << 30, FreeSwap: 2 << 30}
	src.EXPECT().MemoryInfo(gomock.Any()).Return(raw, nil).Times(3)

	out := &recorder{}
	p := producer.NewMemory(producer.Config{Samples: 3}, src, out, logger.Nop())

	assert.Equal(t, producer.KindMemory, p.Kind())
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, out.frames, 3)
	for _, f := range out.frames {
		assert.Equal(t, "12.00 GB / 16.00 GB  -- 12.00 GB / 18.00 GB", string(f))
		_, err := memory.Parse(string(f))
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, out.closed)
}

func TestMemoryProducerCanceledDuringSleep(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().MemoryInfo(gomock.Any()).Return(platform.MemoryInfo{}, nil).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	out := &recorder{}
	p := producer.NewMemory(producer.Config{Samples: 10, Interval: time.Hour}, src, out, logger.Nop())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not observe cancellation")
	}
	assert.Len(t, out.frames, 1)
	assert.Equal(t, 1, out.closed)
}

func TestUsersProducer(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().UserSessions(gomock.Any()).Return([]platform.UserSession{
		{Username: "alice", Terminal: "pts/0", Host: "10.0.0.1"},
		{Username: "bob", Terminal: "tty1", Host: ""},
	}, nil)

	count, blob := &recorder{}, &recorder{}
	p := producer.NewUsers(src, count, blob, logger.Nop())

	assert.Equal(t, producer.KindUsers, p.Kind())
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, count.frames, 1)
	n, err := transport.DecodeCount(count.frames[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	require.Len(t, blob.frames, 1)
	assert.Equal(t, "alice\t pts/0 (10.0.0.1)\nbob\t tty1 ()\n", string(blob.frames[0]))

	assert.Equal(t, 1, count.closed)
	assert.Equal(t, 1, blob.closed)
}

func TestUsersProducerAlreadyCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count, blob := &recorder{}, &recorder{}
	err := producer.NewUsers(src, count, blob, logger.Nop()).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, count.frames)
	assert.Equal(t, 1, count.closed)
	assert.Equal(t, 1, blob.closed)
}

func TestSessionBlobBounded(t *testing.T) {
	sessions := make([]platform.UserSession, 0, 200)
	for i := 0; i < 200; i++ {
		sessions = append(sessions, platform.UserSession{
			Username: strings.Repeat("u", 20),
			Terminal: "pts/1",
			Host:     "host.example.com",
		})
	}

	blob, n := producer.SessionBlob(sessions, producer.MaxUserBuffer)

	assert.LessOrEqual(t, len(blob), producer.MaxUserBuffer)
	assert.Less(t, n, len(sessions))
	assert.Equal(t, n, strings.Count(blob, "\n"))
	assert.True(t, strings.HasSuffix(blob, "\n"))
}

func TestSessionBlobEmpty(t *testing.T) {
	blob, n := producer.SessionBlob(nil, producer.MaxUserBuffer)
	assert.Empty(t, blob)
	assert.Zero(t, n)
}
