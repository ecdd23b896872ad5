package platform

import "codeberg.org/mutker/sysmon/internal/errors"

const (
	ErrReadStat     errors.ErrorCode = "platform_read_stat_failed"
	ErrReadMeminfo  errors.ErrorCode = "platform_read_meminfo_failed"
	ErrReadUptime   errors.ErrorCode = "platform_read_uptime_failed"
	ErrReadSessions errors.ErrorCode = "platform_read_sessions_failed"
	ErrReadUname    errors.ErrorCode = "platform_read_uname_failed"
	ErrParseStat    errors.ErrorCode = "platform_parse_stat_failed"
	ErrNoCPULine    errors.ErrorCode = "platform_no_cpu_line"
	ErrBackend      errors.ErrorCode = "platform_backend_unsupported"
)

var errFactory = errors.New()

// unavailable wraps a backend failure into the recoverable PlatformError.
func unavailable(err error) errors.Error {
	return errFactory.Wrap(errors.ErrPlatform, err)
}
