package logging

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	cblog "github.com/charmbracelet/log"

	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
)

var _ ports.Logger = (*SlogLogger)(nil)

// SlogLogger wraps slog to implement ports.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// New creates a new SlogLogger from an slog.Logger.
func New(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Options selects the console handler's level and output format.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	Prefix string
}

// NewHandler builds a slog.Handler backed by a charmbracelet logger.
func NewHandler(w io.Writer, opts Options) (slog.Handler, error) {
	level, err := cblog.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	var formatter cblog.Formatter
	switch opts.Format {
	case "", "text":
		formatter = cblog.TextFormatter
	case "json":
		formatter = cblog.JSONFormatter
	case "logfmt":
		formatter = cblog.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return cblog.NewWithOptions(w, cblog.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter,
	}), nil
}
