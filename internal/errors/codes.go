package errors

// Common error codes
const (
	// System errors
	ErrInternal    ErrorCode = "internal_error"
	ErrUnavailable ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrInvalidSamples  ErrorCode = "invalid_samples"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"
	ErrOpenLogFile     ErrorCode = "open_log_file_failed"

	// Monitoring run errors
	ErrPlatform      ErrorCode = "platform_unavailable"
	ErrTransport     ErrorCode = "transport_broken"
	ErrChannelSetup  ErrorCode = "channel_setup_failed"
	ErrProducer      ErrorCode = "producer_failed"
	ErrConsumer      ErrorCode = "consumer_failed"
	ErrMonitorAbort  ErrorCode = "monitor_aborted"
	ErrRenderFailed  ErrorCode = "render_failed"
	ErrRecordHistory ErrorCode = "record_history_failed"
	ErrCanceled      ErrorCode = "operation_canceled"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrUnavailable:     "Service unavailable",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidInterval: "Invalid interval value",
	ErrInvalidSamples:  "Invalid sample count",
	ErrInvalidLogLevel: "Invalid log level",
	ErrOpenLogFile:     "Failed to open log file",
	ErrPlatform:        "System statistics unavailable",
	ErrTransport:       "Sample channel broken",
	ErrChannelSetup:    "Failed to create sample channels",
	ErrProducer:        "Sample producer failed",
	ErrConsumer:        "Sample consumer failed",
	ErrMonitorAbort:    "Monitoring run aborted",
	ErrRenderFailed:    "Failed to render samples",
	ErrRecordHistory:   "Failed to record history",
	ErrCanceled:        "Operation canceled",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
