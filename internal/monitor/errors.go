package monitor

import "codeberg.org/mutker/sysmon/internal/errors"

const (
	ErrPrematureEnd errors.ErrorCode = "monitor_premature_end_of_stream"
	ErrBadMemory    errors.ErrorCode = "monitor_bad_memory_line"
)

var errFactory = errors.New()
