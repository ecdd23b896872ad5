//go:build linux

package platform

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sys/unix"
)

// procfsSource reads counters straight from /proc. root is prepended to
// every path so tests can point it at a fixture tree.
type procfsSource struct {
	root string
}

// NewProcfs returns a Source reading /proc below root ("/" for the live system).
func NewProcfs(root string) Source {
	if root == "" {
		root = "/"
	}
	return &procfsSource{root: root}
}

func (p *procfsSource) path(name string) string {
	return filepath.Join(p.root, "proc", name)
}

func (p *procfsSource) CPUCounters(_ context.Context) (RawCPUSample, error) {
	file, err := os.Open(p.path("stat"))
	if err != nil {
		return RawCPUSample{}, unavailable(errFactory.Wrap(ErrReadStat, err))
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		return parseCPULine(line)
	}
	if err := scanner.Err(); err != nil {
		return RawCPUSample{}, unavailable(errFactory.Wrap(ErrReadStat, err))
	}

	return RawCPUSample{}, unavailable(errFactory.New(ErrNoCPULine))
}

// parseCPULine parses the aggregate "cpu" line of /proc/stat. Counters past
// softirq (steal, guest) are ignored.
func parseCPULine(line string) (RawCPUSample, error) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return RawCPUSample{}, unavailable(errFactory.WithData(ErrParseStat, line))
	}

	var vals [7]uint64
	for i := range vals {
		v, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return RawCPUSample{}, unavailable(errFactory.Wrap(ErrParseStat, err))
		}
		vals[i] = v
	}

	return RawCPUSample{
		User:    vals[0],
		Nice:    vals[1],
		System:  vals[2],
		Idle:    vals[3],
		IOWait:  vals[4],
		IRQ:     vals[5],
		SoftIRQ: vals[6],
	}, nil
}

func (p *procfsSource) MemoryInfo(_ context.Context) (MemoryInfo, error) {
	file, err := os.Open(p.path("meminfo"))
	if err != nil {
		return MemoryInfo{}, unavailable(errFactory.Wrap(ErrReadMeminfo, err))
	}
	defer file.Close()

	var info MemoryInfo
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		// /proc/meminfo values are in kB
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		value *= 1024

		switch fields[0] {
		case "MemTotal:":
			info.TotalPhys = value
		case "MemFree:":
			info.FreePhys = value
		case "SwapTotal:":
			info.TotalSwap = value
		case "SwapFree:":
			info.FreeSwap = value
		}
	}
	if err := scanner.Err(); err != nil {
		return MemoryInfo{}, unavailable(errFactory.Wrap(ErrReadMeminfo, err))
	}

	return info, nil
}

func (p *procfsSource) Uptime(_ context.Context) (Uptime, error) {
	data, err := os.ReadFile(p.path("uptime"))
	if err != nil {
		return Uptime{}, unavailable(errFactory.Wrap(ErrReadUptime, err))
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return Uptime{}, unavailable(errFactory.WithData(ErrReadUptime, string(data)))
	}

	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Uptime{}, unavailable(errFactory.Wrap(ErrReadUptime, err))
	}

	return UptimeFromSeconds(uint64(secs)), nil
}

func (p *procfsSource) UserSessions(ctx context.Context) ([]UserSession, error) {
	users, err := host.UsersWithContext(ctx)
	if err != nil {
		return nil, unavailable(errFactory.Wrap(ErrReadSessions, err))
	}
	return sessionsFromStats(users), nil
}

func (p *procfsSource) SystemInfo(_ context.Context) (SystemInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return SystemInfo{}, unavailable(errFactory.Wrap(ErrReadUname, err))
	}

	return SystemInfo{
		SysName:  unix.ByteSliceToString(uts.Sysname[:]),
		NodeName: unix.ByteSliceToString(uts.Nodename[:]),
		Release:  unix.ByteSliceToString(uts.Release[:]),
		Version:  unix.ByteSliceToString(uts.Version[:]),
		Machine:  unix.ByteSliceToString(uts.Machine[:]),
	}, nil
}

// CPUCount counts the per-core "cpuN" lines of /proc/stat.
func (p *procfsSource) CPUCount(_ context.Context) (int, error) {
	file, err := os.Open(p.path("stat"))
	if err != nil {
		return 0, unavailable(errFactory.Wrap(ErrReadStat, err))
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 3 && strings.HasPrefix(line, "cpu") && line[3] >= '0' && line[3] <= '9' {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, unavailable(errFactory.Wrap(ErrReadStat, err))
	}
	if count == 0 {
		return 0, unavailable(errFactory.New(ErrNoCPULine))
	}

	return count, nil
}
