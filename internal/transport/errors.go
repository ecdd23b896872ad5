package transport

import "codeberg.org/mutker/sysmon/internal/errors"

const (
	ErrCodeEndOfStream  errors.ErrorCode = "transport_end_of_stream"
	ErrCodeShortHeader  errors.ErrorCode = "transport_short_header"
	ErrCodeShortPayload errors.ErrorCode = "transport_short_payload"
	ErrCodeFrameTooBig  errors.ErrorCode = "transport_frame_too_large"
	ErrCodeBadPayload   errors.ErrorCode = "transport_bad_payload"
	ErrCodeWrite        errors.ErrorCode = "transport_write_failed"
	ErrCodeRead         errors.ErrorCode = "transport_read_failed"
	ErrCodePipe         errors.ErrorCode = "transport_pipe_failed"
)

var errFactory = errors.New()

// ErrEndOfStream is returned by ReadFrame when the peer closed the channel on
// a frame boundary.
var ErrEndOfStream = errFactory.New(ErrCodeEndOfStream)

// broken builds the fatal TransportError for a failed channel operation.
func broken(code errors.ErrorCode, err error) errors.Error {
	return errFactory.Wrap(errors.ErrTransport, errFactory.Wrap(code, err))
}

// corrupt builds the fatal TransportError for a frame that cannot be trusted.
func corrupt(code errors.ErrorCode, data any) errors.Error {
	return errFactory.Wrap(errors.ErrTransport, errFactory.WithData(code, data))
}
