package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

// RequestIDKey is the context key under which the request id is stored.
const RequestIDKey contextKey = "request_id"

// Logger wraps zerolog for application logging.
type Logger struct {
	logger zerolog.Logger
	closer io.Closer
}

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
	// File, when set, receives a copy of every line through a rotating writer.
	File string
}

// New creates a logger with the given configuration.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	var closer io.Closer
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		output = zerolog.MultiLevelWriter(output, rotating)
		closer = rotating
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{logger: logger, closer: closer}
}

// SetGlobalLogger installs the logger behind the package-level helpers.
func SetGlobalLogger(logger *Logger) {
	log.Logger = logger.logger
}

// Zerolog exposes the underlying zerolog logger.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.logger
}

// Close flushes and closes the rotating log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

func (l *Logger) Fatal(err error, msg string) {
	l.logger.Fatal().Err(err).Msg(msg)
}

// Global logger functions for convenience

// Info logs an info message using the global logger.
func Info(msg string) {
	log.Info().Msg(msg)
}

// Warn logs a warning message using the global logger.
func Warn(msg string) {
	log.Warn().Msg(msg)
}

// Error logs an error message using the global logger.
func Error(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}

// WithContext returns the global logger annotated with values carried by ctx.
func WithContext(ctx context.Context) *zerolog.Logger {
	logger := log.With()

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.Str("request_id", requestID)
	}

	contextLogger := logger.Logger()
	return &contextLogger
}

// ContextWithRequestID stores a request id for later WithContext calls.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
