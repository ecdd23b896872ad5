package producer

import "codeberg.org/mutker/sysmon/internal/errors"

const (
	ErrSample errors.ErrorCode = "producer_sample_failed"
	ErrSend   errors.ErrorCode = "producer_send_failed"
)

var errFactory = errors.New()
