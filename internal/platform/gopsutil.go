package platform

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// userHZ converts gopsutil's seconds back into clock ticks.
const userHZ = 100

type gopsutilSource struct{}

// NewGopsutil returns a Source backed by gopsutil, usable on every OS it supports.
func NewGopsutil() Source {
	return &gopsutilSource{}
}

func (g *gopsutilSource) CPUCounters(ctx context.Context) (RawCPUSample, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return RawCPUSample{}, unavailable(errFactory.Wrap(ErrReadStat, err))
	}
	if len(times) == 0 {
		return RawCPUSample{}, unavailable(errFactory.New(ErrNoCPULine))
	}

	t := times[0]
	return RawCPUSample{
		User:    ticks(t.User),
		Nice:    ticks(t.Nice),
		System:  ticks(t.System),
		Idle:    ticks(t.Idle),
		IOWait:  ticks(t.Iowait),
		IRQ:     ticks(t.Irq),
		SoftIRQ: ticks(t.Softirq),
	}, nil
}

func ticks(secs float64) uint64 {
	if secs <= 0 {
		return 0
	}
	return uint64(secs*userHZ + 0.5)
}

func (g *gopsutilSource) MemoryInfo(ctx context.Context) (MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryInfo{}, unavailable(errFactory.Wrap(ErrReadMeminfo, err))
	}

	info := MemoryInfo{
		TotalPhys: vm.Total,
		FreePhys:  vm.Free,
	}

	// Swap may legitimately be missing; report it as zero.
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		info.TotalSwap = swap.Total
		info.FreeSwap = swap.Free
	}

	return info, nil
}

func (g *gopsutilSource) Uptime(ctx context.Context) (Uptime, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return Uptime{}, unavailable(errFactory.Wrap(ErrReadUptime, err))
	}
	return UptimeFromSeconds(secs), nil
}

func (g *gopsutilSource) UserSessions(ctx context.Context) ([]UserSession, error) {
	users, err := host.UsersWithContext(ctx)
	if err != nil {
		return nil, unavailable(errFactory.Wrap(ErrReadSessions, err))
	}
	return sessionsFromStats(users), nil
}

func (g *gopsutilSource) SystemInfo(ctx context.Context) (SystemInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return SystemInfo{}, unavailable(errFactory.Wrap(ErrReadUname, err))
	}

	return SystemInfo{
		SysName:  info.OS,
		NodeName: info.Hostname,
		Release:  info.KernelVersion,
		Version:  info.PlatformVersion,
		Machine:  info.KernelArch,
	}, nil
}

func (g *gopsutilSource) CPUCount(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, unavailable(errFactory.Wrap(ErrReadStat, err))
	}
	return n, nil
}

func sessionsFromStats(users []host.UserStat) []UserSession {
	sessions := make([]UserSession, 0, len(users))
	for _, u := range users {
		sessions = append(sessions, UserSession{
			Username: u.User,
			Terminal: u.Terminal,
			Host:     u.Host,
		})
	}
	return sessions
}
