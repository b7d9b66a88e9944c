package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"shotpair/pkg/config"
)

// Logger is the logging surface used across shotpair
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	DebugWithFields(msg string, fields map[string]interface{})
	InfoWithFields(msg string, fields map[string]interface{})
	WarnWithFields(msg string, fields map[string]interface{})
	ErrorWithFields(msg string, fields map[string]interface{})
}

// zerologLogger implements Logger on top of a zerolog.Logger.
// Fields are applied through zerolog's context so children never share state.
type zerologLogger struct {
	zl zerolog.Logger
}

// New builds a Logger from cfg. Console output goes to stderr so that
// progress output on stdout stays readable; when cfg.File is set the
// same events are also appended to that file as JSON.
func New(cfg *config.LoggingConfig) (Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit console destination
func NewWithWriter(cfg *config.LoggingConfig, console io.Writer) (Logger, error) {
	level, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return formatLevel(fmt.Sprintf("%s", i))
		},
	}

	if cfg.File != "" {
		file, err := openLogFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to setup file output: %w", err)
		}
		out = zerolog.MultiLevelWriter(out, file)
	}

	zl := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "shotpair").
		Logger()

	return &zerologLogger{zl: zl}, nil
}

// FromZerolog wraps an existing zerolog logger
func FromZerolog(zl zerolog.Logger) Logger {
	return &zerologLogger{zl: zl}
}

func formatLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "\033[37mDEBG\033[0m"
	case "info":
		return "\033[32mINFO\033[0m"
	case "warn":
		return "\033[33mWARN\033[0m"
	case "error":
		return "\033[31mERRO\033[0m"
	default:
		return strings.ToUpper(level)
	}
}

func openLogFile(path string) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// parseLogLevel converts a config level name to a zerolog.Level
func parseLogLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

func (l *zerologLogger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *zerologLogger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *zerologLogger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *zerologLogger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *zerologLogger) WithField(key string, value interface{}) Logger {
	return &zerologLogger{zl: addField(l.zl.With(), key, value).Logger()}
}

func (l *zerologLogger) WithFields(fields map[string]interface{}) Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = addField(ctx, k, v)
	}
	return &zerologLogger{zl: ctx.Logger()}
}

// WithError returns l unchanged when err is nil
func (l *zerologLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return &zerologLogger{zl: l.zl.With().Err(err).Logger()}
}

func (l *zerologLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	withFields(l.zl.Debug(), fields).Msg(msg)
}

func (l *zerologLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	withFields(l.zl.Info(), fields).Msg(msg)
}

func (l *zerologLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	withFields(l.zl.Warn(), fields).Msg(msg)
}

func (l *zerologLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	withFields(l.zl.Error(), fields).Msg(msg)
}

func withFields(event *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			event = event.Str(k, val)
		case int:
			event = event.Int(k, val)
		case int64:
			event = event.Int64(k, val)
		case bool:
			event = event.Bool(k, val)
		case time.Duration:
			event = event.Dur(k, val)
		case error:
			event = event.AnErr(k, val)
		default:
			event = event.Interface(k, val)
		}
	}
	return event
}

func addField(ctx zerolog.Context, key string, value interface{}) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case bool:
		return ctx.Bool(key, v)
	case time.Duration:
		return ctx.Dur(key, v)
	case error:
		return ctx.AnErr(key, v)
	default:
		return ctx.Interface(key, v)
	}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger
)

// Initialize sets up the global logger used by the CLI
func Initialize(cfg *config.LoggingConfig) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()

	log.Logger = l.(*zerologLogger).zl
	return nil
}

// GetLogger returns the global logger, creating an info-level console
// logger on first use if Initialize was never called.
func GetLogger() Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger, _ = New(&config.LoggingConfig{Level: "info"})
	}
	return globalLogger
}

// NewNopLogger returns a Logger that discards everything
func NewNopLogger() Logger {
	return &zerologLogger{zl: zerolog.Nop()}
}
