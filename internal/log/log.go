// Package log builds the slog logger used by the vtopo command.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level, format and destination of the logger.
type Options struct {
	Level  string // debug, info, warn or error
	Format string // text or json
	File   string // rotate into this file instead of writing to the fallback writer

	MaxSizeMB  int // rotation size, lumberjack default when 0
	MaxBackups int
}

// Logger is a slog.Logger that may own a rotating file.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New returns a logger writing to fallback, or to opts.File with rotation
// when set. An unknown level or format is an error.
func New(opts Options, fallback io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	w := fallback
	var closer io.Closer
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB, // MB
			MaxBackups: opts.MaxBackups,
		}
		w, closer = lj, lj
	}

	ho := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, ho)
	case "json":
		h = slog.NewJSONHandler(w, ho)
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return &Logger{Logger: slog.New(h), closer: closer}, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel maps a level name to a slog.Level. "" is info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
}
