// Package logger configures the process-wide structured logger.
//
// The engine logs recoverable anomalies (stale document handles,
// missing entities, malformed command payloads) at warning level and
// never escalates them; everything funnels through log/slog so hosts
// can redirect or silence output.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu       sync.Mutex
	level    = new(slog.LevelVar)
	instance = newLogger(io.Discard)
)

func newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.SourceKey:
				if src, ok := a.Value.Any().(*slog.Source); ok {
					src.File = filepath.Base(src.File)
				}
			case slog.TimeKey:
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init directs log output to w at the given level. Before Init is
// called output is discarded, which keeps library use quiet by default.
func Init(lvl slog.Level, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		w = io.Discard
	}
	level.Set(lvl)
	instance = newLogger(w)
}

// SetLevel changes the log level without replacing the output.
func SetLevel(lvl slog.Level) {
	level.Set(lvl)
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return instance
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	get().Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	get().Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warning level.
func Warnf(format string, args ...any) {
	get().Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	get().Error(fmt.Sprintf(format, args...))
}
