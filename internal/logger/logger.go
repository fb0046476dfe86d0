// Package logger provides the thread-safe debug/diagnostic logger shared by
// the pre-roll worker, the frame value type's debug viewers, and the demo
// CLI.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Thread safe logger, backed by logrus. Kept API-compatible with the
// original file-backed logger (New/Noop/Log/Close/IsEnabled) so callers
// written against either feel identical; Warn and Once are additions
// needed by the worker's error-handling and waveform over-range reporting.
type Logger struct {
	entry   *logrus.Entry
	file    *os.File
	enabled bool

	onceMu   sync.Mutex
	onceSeen map[string]struct{}
}

// Creates a new logger that writes to path. An empty path yields a
// Noop logger.
func New(path string) (*Logger, error) {
	if path == "" {
		return Noop(), nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetOutput(file)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	base.SetLevel(logrus.DebugLevel)

	return &Logger{
		entry:    logrus.NewEntry(base),
		file:     file,
		enabled:  true,
		onceSeen: make(map[string]struct{}),
	}, nil
}

// Returns a logger that discards everything written to it
func Noop() *Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return &Logger{
		entry:    logrus.NewEntry(base),
		enabled:  false,
		onceSeen: make(map[string]struct{}),
	}
}

// Writes a formatted message at info level
func (l *Logger) Log(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.entry.Infof(format, args...)
}

// Writes a formatted message at warn level
func (l *Logger) Warn(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.entry.Warnf(format, args...)
}

// Logs at warn level the first time it is called for a given key, and is a
// no-op on every subsequent call with that key. Used for conditions that are
// expected to recur every pass (e.g. a misconfigured fps) but should only be
// reported once.
func (l *Logger) Once(key, format string, args ...any) {
	if !l.enabled {
		return
	}
	l.onceMu.Lock()
	_, seen := l.onceSeen[key]
	if !seen {
		l.onceSeen[key] = struct{}{}
	}
	l.onceMu.Unlock()

	if !seen {
		l.entry.Warnf(format, args...)
	}
}

// Closes the log file, if any
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

// Returns whether logging is enabled
func (l *Logger) IsEnabled() bool {
	return l.enabled
}
