package logger

import "codeberg.org/mutker/sysmon/internal/errors"

// Logger defines the interface for logging operations.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	WarnWithCode(err errors.Error) *LogEvent
	ErrorWithCode(err errors.Error) *LogEvent
	With(component string) Logger
}
