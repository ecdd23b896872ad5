// Package producer implements the sampling workers that feed the monitor.
package producer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/logger"
	"codeberg.org/mutker/sysmon/internal/memory"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/transport"
)

// MaxUserBuffer bounds the session blob in bytes.
const MaxUserBuffer = 4096

// CPU sends a counter snapshot on prev, sleeps one interval, then sends
// another on curr, once per sample.
type CPU struct {
	cfg  Config
	src  platform.Source
	prev transport.Sender
	curr transport.Sender
	log  logger.Logger
}

func NewCPU(cfg Config, src platform.Source, prev, curr transport.Sender, log logger.Logger) *CPU {
	return &CPU{cfg: cfg, src: src, prev: prev, curr: curr, log: componentLogger(log, KindCPU)}
}

func (p *CPU) Kind() Kind { return KindCPU }

func (p *CPU) Run(ctx context.Context) error {
	defer closeAll(p.log, p.prev, p.curr)

	for i := 0; i < p.cfg.Samples; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := p.send(ctx, p.prev, i); err != nil {
			return err
		}

		if err := sleep(ctx, p.cfg.Interval); err != nil {
			return err
		}

		if err := p.send(ctx, p.curr, i); err != nil {
			return err
		}
	}

	p.log.Debug().Int("samples", p.cfg.Samples).Msg("CPU sampling complete")
	return nil
}

func (p *CPU) send(ctx context.Context, out transport.Sender, i int) error {
	sample, err := p.src.CPUCounters(ctx)
	if err != nil {
		logSampleError(p.log, err)
	}

	if err := out.WriteFrame(transport.EncodeCPU(sample)); err != nil {
		return sendFailed(p.log, err, i)
	}
	return nil
}

// Memory sends one formatted summary per sample, sleeping between samples.
type Memory struct {
	cfg Config
	src platform.Source
	out transport.Sender
	log logger.Logger
}

func NewMemory(cfg Config, src platform.Source, out transport.Sender, log logger.Logger) *Memory {
	return &Memory{cfg: cfg, src: src, out: out, log: componentLogger(log, KindMemory)}
}

func (p *Memory) Kind() Kind { return KindMemory }

func (p *Memory) Run(ctx context.Context) error {
	defer closeAll(p.log, p.out)

	for i := 0; i < p.cfg.Samples; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := p.src.MemoryInfo(ctx)
		if err != nil {
			logSampleError(p.log, err)
		}

		line := memory.Format(memory.Summarize(raw))
		if err := p.out.WriteFrame([]byte(line)); err != nil {
			return sendFailed(p.log, err, i)
		}

		if i == p.cfg.Samples-1 {
			break
		}
		if err := sleep(ctx, p.cfg.Interval); err != nil {
			return err
		}
	}

	p.log.Debug().Int("samples", p.cfg.Samples).Msg("Memory sampling complete")
	return nil
}

// Users sends the session count and then the session blob, once.
type Users struct {
	src   platform.Source
	count transport.Sender
	blob  transport.Sender
	log   logger.Logger
}

func NewUsers(src platform.Source, count, blob transport.Sender, log logger.Logger) *Users {
	return &Users{src: src, count: count, blob: blob, log: componentLogger(log, KindUsers)}
}

func (p *Users) Kind() Kind { return KindUsers }

func (p *Users) Run(ctx context.Context) error {
	defer closeAll(p.log, p.count, p.blob)

	if err := ctx.Err(); err != nil {
		return err
	}

	sessions, err := p.src.UserSessions(ctx)
	if err != nil {
		logSampleError(p.log, err)
	}

	blob, n := SessionBlob(sessions, MaxUserBuffer)
	if n < len(sessions) {
		p.log.Warn().Int("sessions", len(sessions)).Int("included", n).Msg("Session list truncated")
	}

	if err := p.count.WriteFrame(transport.EncodeCount(uint64(n))); err != nil {
		return sendFailed(p.log, err, 0)
	}
	if err := p.blob.WriteFrame([]byte(blob)); err != nil {
		return sendFailed(p.log, err, 0)
	}

	return nil
}

// SessionLine formats one session as "user\t terminal (host)\n".
func SessionLine(s platform.UserSession) string {
	return fmt.Sprintf("%s\t %s (%s)\n", s.Username, s.Terminal, s.Host)
}

// SessionBlob concatenates whole session lines while they fit in limit bytes
// and returns the blob with the number of lines it holds.
func SessionBlob(sessions []platform.UserSession, limit int) (string, int) {
	var b strings.Builder
	n := 0
	for _, s := range sessions {
		line := SessionLine(s)
		if b.Len()+len(line) > limit {
			break
		}
		b.WriteString(line)
		n++
	}
	return b.String(), n
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func componentLogger(log logger.Logger, kind Kind) logger.Logger {
	if log == nil {
		log = logger.Default()
	}
	return log.With("producer_" + string(kind))
}

// logSampleError records a platform failure; the zero value is sent instead.
func logSampleError(log logger.Logger, err error) {
	var coded errors.Error
	if !errors.As(err, &coded) {
		coded = errFactory.Wrap(ErrSample, err)
	}
	log.WarnWithCode(coded).Msg("Sampling failed, sending zero value")
}

func sendFailed(log logger.Logger, err error, sample int) error {
	var coded errors.Error
	if !errors.As(err, &coded) {
		coded = errFactory.Wrap(errors.ErrTransport, errFactory.Wrap(ErrSend, err))
	}
	log.ErrorWithCode(coded).Int("sample", sample).Msg("Failed to send frame")
	return coded
}

func closeAll(log logger.Logger, ends ...transport.Sender) {
	for _, end := range ends {
		if err := end.Close(); err != nil {
			log.Debug().Err(err).Msg("Closing write end")
		}
	}
}
