// Package logging builds the process-wide slog logger for the cluster
// binaries.
//
// Records go to stderr, or to a size-rotated file when a path is given.
// Every record carries a "run" attribute with a random UUID so lines from
// one process run can be grouped after rotation.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalid is returned for an unknown level or format.
var ErrInvalid = errors.New("logging: invalid option")

// Rotation limits for file output.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // rotate into this file; empty logs to Output

	// Output receives records when File is empty. Nil means os.Stderr.
	Output io.Writer
}

// Logger is a configured logger and the writer it owns.
type Logger struct {
	*slog.Logger

	// RunID identifies this process run in every record.
	RunID uuid.UUID

	closer io.Closer
}

// New creates a logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var (
		w      io.Writer = opts.Output
		closer io.Closer
	)
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		w, closer = lj, lj
	}
	if w == nil {
		w = os.Stderr
	}

	ho := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, ho)
	case "json":
		h = slog.NewJSONHandler(w, ho)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrInvalid, opts.Format)
	}

	id := uuid.New()
	return &Logger{
		Logger: slog.New(h).With("run", id.String()),
		RunID:  id,
		closer: closer,
	}, nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel converts a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: level %q", ErrInvalid, s)
	}
}
