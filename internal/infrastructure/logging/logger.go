package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/oakensoul/sensorcore/internal/infrastructure/config"
)

// Logger is the application logger: slog with the service identity
// attached to every record. Component loggers hang off it via With.
type Logger struct {
	*slog.Logger
}

// New builds a Logger from the logging section of the configuration.
// Format selects JSON (the default) or text handlers; output selects
// stdout or stderr.
func New(cfg config.LoggingConfig, version string) *Logger {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		output = os.Stderr
	default:
		output = os.Stdout
	}
	return build(output, cfg, version)
}

// build is New with the destination injected, so tests can capture
// emitted records in a buffer.
func build(w io.Writer, cfg config.LoggingConfig, version string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	// Every record carries the service identity.
	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "sensorcore"),
		slog.String("version", version),
	})

	return &Logger{Logger: slog.New(handler)}
}

// parseLevel maps a configured level name onto slog. Unrecognised
// names fall back to info rather than failing startup.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger carrying extra default attributes, used
// to tag records per component:
//
//	ingestLog := log.With("component", "ingest")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default returns the bootstrap logger used before the configuration
// is loaded: JSON to stdout at info level.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
