// Package logger builds the slog loggers handed to every memory component.
//
// Components never reach for a global logger: the engine bootstrap creates one
// with New and threads it through constructor options. Loggers built here know
// one extra severity, LevelFatal, used for failures the engine treats as
// unrecoverable for the current subsystem. Logging at LevelFatal never exits
// the process.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LevelFatal sits above slog.LevelError.
const LevelFatal = slog.LevelError + 4

const (
	logPrefix     = "memctl-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures logger construction.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Level   slog.Level // Minimum level. Default: LevelInfo
	Format  Format     // Default: FormatText
	Writer  io.Writer  // Destination. Default: os.Stderr (ignored when LogDir is set)
	LogDir  string     // If set, log to a dated file in this directory instead
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// New builds a logger from opts. The returned close func releases the log file
// when LogDir is used and is a no-op otherwise.
func New(opts Options) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if !opts.Enabled {
		return Discard(), noop, nil
	}

	w := opts.Writer
	closer := noop
	if opts.LogDir != "" {
		f, err := openLogFile(opts.LogDir)
		if err != nil {
			return nil, noop, err
		}
		w = f
		closer = f.Close
	}
	if w == nil {
		w = os.Stderr
	}

	hopts := &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: renameLevels,
	}

	var h slog.Handler
	if opts.Format == FormatJSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h), closer, nil
}

// renameLevels prints LevelFatal as "FATAL" instead of "ERROR+4".
func renameLevels(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelFatal {
		a.Value = slog.StringValue("FATAL")
	}
	return a
}

func openLogFile(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	// Best-effort; a failed cleanup never blocks logging.
	cleanOldLogs(logDir)

	filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	return os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// memctl-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Logf formats a message and logs it at level. A nil logger is ignored.
func Logf(l *slog.Logger, level slog.Level, format string, args ...any) {
	if l == nil || !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Fatalf logs at LevelFatal. It does not exit.
func Fatalf(l *slog.Logger, format string, args ...any) { Logf(l, LevelFatal, format, args...) }

// Errorf logs at slog.LevelError.
func Errorf(l *slog.Logger, format string, args ...any) { Logf(l, slog.LevelError, format, args...) }

// Warnf logs at slog.LevelWarn.
func Warnf(l *slog.Logger, format string, args ...any) { Logf(l, slog.LevelWarn, format, args...) }

// Debugf logs at slog.LevelDebug.
func Debugf(l *slog.Logger, format string, args ...any) { Logf(l, slog.LevelDebug, format, args...) }
