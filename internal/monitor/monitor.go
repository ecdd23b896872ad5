// Package monitor supervises one sampling run: it wires the producers to the
// consumer over dedicated channels and tears everything down on the first
// failure.
package monitor

import (
	"context"
	"time"

	"codeberg.org/mutker/sysmon/internal/cpu"
	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/logger"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/producer"
	"golang.org/x/sync/errgroup"
)

// Run samples opts.Samples rounds from src and delivers them to sink.
//
// Channel setup failure aborts before any producer starts. Afterwards any
// producer or consumer failure cancels the others, and Run returns only once
// every worker has exited. A canceled ctx is reported as ErrCanceled wrapping
// the context error.
func Run(ctx context.Context, opts Options, src platform.Source, sink Sink) error {
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	log = log.With("monitor")

	if opts.Samples <= 0 {
		return errFactory.WithData(errors.ErrInvalidSamples, opts.Samples)
	}
	if opts.Interval < 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, opts.Interval)
	}

	chans, err := openChannels()
	if err != nil {
		return errFactory.Wrap(errors.ErrChannelSetup, err)
	}
	defer chans.closeAll()

	cfg := producer.Config{Samples: opts.Samples, Interval: opts.Interval}
	producers := []producer.Producer{
		producer.NewCPU(cfg, src, chans.cpuPrev.w, chans.cpuCurr.w, log),
		producer.NewMemory(cfg, src, chans.memory.w, log),
		producer.NewUsers(src, chans.userCount.w, chans.userBlob.w, log),
	}

	c := &consumer{
		samples:   opts.Samples,
		cpuPrev:   chans.cpuPrev.r,
		cpuCurr:   chans.cpuCurr.r,
		memory:    chans.memory.r,
		userCount: chans.userCount.r,
		userBlob:  chans.userBlob.r,
		estimator: cpu.NewEstimator(),
		history:   opts.History,
		sink:      sink,
		log:       log.With("consumer"),
		now:       time.Now,
	}

	log.Debug().
		Int("samples", opts.Samples).
		Dur("interval", opts.Interval).
		Msg("Starting sampling run")

	g, gctx := errgroup.WithContext(ctx)

	for _, p := range producers {
		p := p
		g.Go(func() error {
			if err := p.Run(gctx); err != nil {
				if gctx.Err() == nil {
					return errFactory.Wrap(errors.ErrProducer, err)
				}
				return err
			}
			return nil
		})
	}

	done := make(chan struct{})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			chans.closeReaders()
		case <-done:
		}
		return nil
	})

	g.Go(func() error {
		defer close(done)
		if err := c.run(gctx); err != nil {
			if gctx.Err() == nil {
				return errFactory.Wrap(errors.ErrConsumer, err)
			}
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			log.Debug().Err(err).Msg("Sampling run canceled")
			return errFactory.Wrap(errors.ErrCanceled, ctx.Err())
		}

		var coded errors.Error
		if !errors.As(err, &coded) {
			coded = errFactory.Wrap(errors.ErrInternal, err)
		}
		log.ErrorWithCode(coded).Msg("Sampling run aborted")
		return errFactory.Wrap(errors.ErrMonitorAbort, coded)
	}

	log.Debug().Msg("Sampling run complete")
	return nil
}
