package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/sysmon/internal/errors"
	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

const logFilePerm = 0o644

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// Options controls where and how much is logged.
type Options struct {
	Level   LogLevel
	Out     io.Writer // console output, defaults to stderr
	File    string    // optional JSON log file
	NoColor bool
}

// ParseLevel maps a configuration string to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return WarnLevel, errors.New().WithData(errors.ErrInvalidLogLevel, s)
	}
}

// Init initializes the package logger. The returned closer releases the log
// file, if one was opened.
func Init(opts Options) (io.Closer, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    opts.NoColor,
	}

	var (
		w      io.Writer = console
		closer io.Closer = nopCloser{}
	)

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
		if err != nil {
			return closer, errors.New().Wrap(errors.ErrOpenLogFile, err)
		}
		w = zerolog.MultiLevelWriter(console, f)
		closer = f
	}

	log = zerolog.New(w).With().Timestamp().Logger()
	SetLogLevel(opts.Level)

	return closer, nil
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with a specific error code
func ErrorWithCode(err errors.Error) *LogEvent {
	return withCode(log.Error(), err)
}

func withCode(ev *zerolog.Event, err errors.Error) *LogEvent {
	return &LogEvent{ev.
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error()).
		AnErr("error", err.Unwrap())}
}

// Default returns a Logger backed by the package logger.
func Default() Logger {
	return &zeroLogger{base: &log}
}

// New returns a Logger writing JSON lines to w at the given level. It does not
// touch the package logger, which makes it suitable for tests.
func New(w io.Writer, level LogLevel) Logger {
	l := zerolog.New(w).Level(zerolog.Level(level)).With().Timestamp().Logger()
	return &zeroLogger{own: l}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zeroLogger{own: zerolog.Nop()}
}

// zeroLogger either follows the package logger (base != nil), so a later
// Init is picked up, or owns a fixed logger.
type zeroLogger struct {
	base      *zerolog.Logger
	own       zerolog.Logger
	component string
}

func (z *zeroLogger) logger() zerolog.Logger {
	l := z.own
	if z.base != nil {
		l = *z.base
	}
	if z.component != "" {
		l = l.With().Str("component", z.component).Logger()
	}
	return l
}

func (z *zeroLogger) Debug() *LogEvent {
	l := z.logger()
	return &LogEvent{l.Debug()}
}

func (z *zeroLogger) Info() *LogEvent {
	l := z.logger()
	return &LogEvent{l.Info()}
}

func (z *zeroLogger) Warn() *LogEvent {
	l := z.logger()
	return &LogEvent{l.Warn()}
}

func (z *zeroLogger) Error() *LogEvent {
	l := z.logger()
	return &LogEvent{l.Error()}
}

func (z *zeroLogger) WarnWithCode(err errors.Error) *LogEvent {
	l := z.logger()
	return withCode(l.Warn(), err)
}

func (z *zeroLogger) ErrorWithCode(err errors.Error) *LogEvent {
	l := z.logger()
	return withCode(l.Error(), err)
}

func (z *zeroLogger) With(component string) Logger {
	return &zeroLogger{base: z.base, own: z.own, component: component}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
