package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/andrescamacho/planner-go/internal/infrastructure/config"
)

// NewLogger builds an slog logger from the logging configuration.
// The returned closer releases the log file when output is "file" and is a no-op otherwise.
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	return NewLoggerTo(out, cfg), closer, nil
}

// NewLoggerTo builds a logger writing to out, ignoring cfg.Output
func NewLoggerTo(out io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// ParseLevel maps a configured level name to an slog level, defaulting to info
func ParseLevel(level string) slog.Level {
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

// PlanLogger adapts an slog logger to the application's level/message/metadata logger
type PlanLogger struct {
	logger *slog.Logger
}

// NewPlanLogger wraps logger; nil uses slog.Default()
func NewPlanLogger(logger *slog.Logger) *PlanLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanLogger{logger: logger}
}

// Log writes message at level with metadata as attributes
func (l *PlanLogger) Log(level, message string, metadata map[string]interface{}) {
	args := make([]any, 0, len(metadata)*2)
	for _, k := range slices.Sorted(maps.Keys(metadata)) {
		args = append(args, k, metadata[k])
	}
	l.logger.Log(context.Background(), ParseLevel(level), message, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
