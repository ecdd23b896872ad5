package history

import "codeberg.org/mutker/sysmon/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidSize   = errors.ErrorCode("history_invalid_size")

	// Collection Errors
	ErrRecord          = errors.ErrRecordHistory
	ErrInvalidSnapshot = errors.ErrorCode("history_invalid_snapshot")
	ErrClosed          = errors.ErrorCode("history_closed")

	// Operation Errors
	ErrCanceled = errors.ErrCanceled
)
