package monitor

import (
	"context"
	"time"

	"codeberg.org/mutker/sysmon/internal/cpu"
	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/history"
	"codeberg.org/mutker/sysmon/internal/logger"
	"codeberg.org/mutker/sysmon/internal/memory"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/transport"
)

// consumer reads every round in a fixed order: cpu-prev, cpu-curr, memory,
// then on round 0 user-count and user-blob. A slow producer stalls the round.
type consumer struct {
	samples int

	cpuPrev   transport.Receiver
	cpuCurr   transport.Receiver
	memory    transport.Receiver
	userCount transport.Receiver
	userBlob  transport.Receiver

	estimator *cpu.Estimator
	history   history.Recorder
	sink      Sink
	log       logger.Logger
	now       func() time.Time
}

func (c *consumer) run(ctx context.Context) error {
	for i := 0; i < c.samples; i++ {
		prev, err := c.readCPU(ctx, c.cpuPrev)
		if err != nil {
			return err
		}
		curr, err := c.readCPU(ctx, c.cpuCurr)
		if err != nil {
			return err
		}

		payload, err := c.read(ctx, c.memory)
		if err != nil {
			return err
		}
		line := string(payload)
		snap, err := memory.Parse(line)
		if err != nil {
			// A garbled summary degrades to zeros for this round.
			c.log.WarnWithCode(errFactory.Wrap(ErrBadMemory, err)).Int("round", i).Msg("Unreadable memory summary")
		}

		if i == 0 {
			sessions, err := c.readSessions(ctx)
			if err != nil {
				return err
			}
			if err := c.sink.Sessions(sessions); err != nil {
				return errFactory.Wrap(errors.ErrRenderFailed, err)
			}
		}

		round := Round{
			Index:      i,
			CPUPercent: c.estimator.EstimatePair(prev, curr),
			Memory:     snap,
			MemoryLine: line,
			Timestamp:  c.now(),
		}

		if c.history != nil {
			if err := c.history.Record(ctx, &history.Snapshot{
				Timestamp:  round.Timestamp,
				Round:      round.Index,
				CPUPercent: round.CPUPercent,
				Memory:     round.Memory,
			}); err != nil {
				var coded errors.Error
				if errors.As(err, &coded) {
					c.log.WarnWithCode(coded).Int("round", i).Msg("History not updated")
				}
			}
		}

		c.log.Debug().
			Int("round", i).
			Float64("cpu_percent", round.CPUPercent).
			Str("memory", line).
			Msg("Round complete")

		if err := c.sink.Round(round); err != nil {
			return errFactory.Wrap(errors.ErrRenderFailed, err)
		}
	}

	return nil
}

func (c *consumer) readSessions(ctx context.Context) (Sessions, error) {
	payload, err := c.read(ctx, c.userCount)
	if err != nil {
		return Sessions{}, err
	}
	n, err := transport.DecodeCount(payload)
	if err != nil {
		return Sessions{}, err
	}

	blob, err := c.read(ctx, c.userBlob)
	if err != nil {
		return Sessions{}, err
	}

	return Sessions{Count: int(n), Blob: string(blob)}, nil
}

func (c *consumer) readCPU(ctx context.Context, r transport.Receiver) (platform.RawCPUSample, error) {
	payload, err := c.read(ctx, r)
	if err != nil {
		return platform.RawCPUSample{}, err
	}
	return transport.DecodeCPU(payload)
}

// read returns the next frame. Once ctx is done every read failure is
// reported as the cancellation, since the read ends are closed under us.
func (c *consumer) read(ctx context.Context, r transport.Receiver) ([]byte, error) {
	payload, err := r.ReadFrame()
	if err == nil {
		return payload, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if errors.Is(err, transport.ErrEndOfStream) {
		return nil, errFactory.Wrap(errors.ErrTransport, errFactory.Wrap(ErrPrematureEnd, err))
	}
	return nil, err
}
