package platform

import (
	"context"
	"sync"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/logger"
)

// Resilient wraps a Source so that failures never reach the caller. A failed
// reading is logged with its code and replaced by the last successful one, or
// the zero value before any success.
type Resilient struct {
	src Source
	log logger.Logger

	mu       sync.Mutex
	cpu      RawCPUSample
	mem      MemoryInfo
	uptime   Uptime
	sessions []UserSession
	sysinfo  SystemInfo
	cpuCount int
}

var _ Source = (*Resilient)(nil)

func NewResilient(src Source, log logger.Logger) *Resilient {
	if log == nil {
		log = logger.Default()
	}
	return &Resilient{
		src: src,
		log: log.With("platform"),
	}
}

func (r *Resilient) report(op string, err error) {
	var coded errors.Error
	if !errors.As(err, &coded) {
		coded = unavailable(err)
	}
	r.log.WarnWithCode(coded).Str("op", op).Msg("Using last known value")
}

func (r *Resilient) CPUCounters(ctx context.Context) (RawCPUSample, error) {
	v, err := r.src.CPUCounters(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.report("cpu_counters", err)
		return r.cpu, nil
	}
	r.cpu = v
	return v, nil
}

func (r *Resilient) MemoryInfo(ctx context.Context) (MemoryInfo, error) {
	v, err := r.src.MemoryInfo(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.report("memory_info", err)
		return r.mem, nil
	}
	r.mem = v
	return v, nil
}

func (r *Resilient) Uptime(ctx context.Context) (Uptime, error) {
	v, err := r.src.Uptime(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.report("uptime", err)
		return r.uptime, nil
	}
	r.uptime = v
	return v, nil
}

func (r *Resilient) UserSessions(ctx context.Context) ([]UserSession, error) {
	v, err := r.src.UserSessions(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.report("user_sessions", err)
		return append([]UserSession(nil), r.sessions...), nil
	}
	r.sessions = append([]UserSession(nil), v...)
	return v, nil
}

func (r *Resilient) SystemInfo(ctx context.Context) (SystemInfo, error) {
	v, err := r.src.SystemInfo(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.report("system_info", err)
		return r.sysinfo, nil
	}
	r.sysinfo = v
	return v, nil
}

func (r *Resilient) CPUCount(ctx context.Context) (int, error) {
	v, err := r.src.CPUCount(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.report("cpu_count", err)
		return r.cpuCount, nil
	}
	r.cpuCount = v
	return v, nil
}
