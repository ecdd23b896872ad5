package platform

import "context"

// RawCPUSample holds the cumulative CPU time counters, in OS ticks, for the
// aggregate of all cores.
type RawCPUSample struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
}

// Total returns the sum of all seven counters.
func (s RawCPUSample) Total() uint64 {
	return s.User + s.Nice + s.System + s.Idle + s.IOWait + s.IRQ + s.SoftIRQ
}

// MemoryInfo is a point-in-time memory reading in bytes.
type MemoryInfo struct {
	TotalPhys uint64
	FreePhys  uint64
	TotalSwap uint64
	FreeSwap  uint64
}

type Uptime struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// UptimeFromSeconds splits an uptime in seconds into days and clock fields.
func UptimeFromSeconds(secs uint64) Uptime {
	return Uptime{
		Days:    int(secs / 86400),
		Hours:   int(secs / 3600 % 24),
		Minutes: int(secs / 60 % 60),
		Seconds: int(secs % 60),
	}
}

// TotalHours returns the uptime expressed in hours, days included.
func (u Uptime) TotalHours() int {
	return u.Days*24 + u.Hours
}

type UserSession struct {
	Username string
	Terminal string
	Host     string
}

// SystemInfo mirrors the fields of uname(2).
type SystemInfo struct {
	SysName  string
	NodeName string
	Release  string
	Version  string
	Machine  string
}

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks codeberg.org/mutker/sysmon/internal/platform Source

// Source provides the raw operating system statistics sampled by the monitor.
type Source interface {
	CPUCounters(ctx context.Context) (RawCPUSample, error)
	MemoryInfo(ctx context.Context) (MemoryInfo, error)
	Uptime(ctx context.Context) (Uptime, error)
	UserSessions(ctx context.Context) ([]UserSession, error)
	SystemInfo(ctx context.Context) (SystemInfo, error)
	CPUCount(ctx context.Context) (int, error)
}
