package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger is a named, leveled sink owned by a single test set. It writes to the
// console and, optionally, to a log file that is released by Close.
type Logger struct {
	name   string
	level  LogLevel
	logger *slog.Logger

	file      *os.File
	closeOnce sync.Once
	closeErr  error
}

// New creates a Logger writing only to console.
func New(name string, level LogLevel, console io.Writer) *Logger {
	return newLogger(name, level, console, nil)
}

// NewWithFile creates a Logger writing to console and appending to the file at
// path. Missing parent directories are created. On error no file is held and
// the returned Logger is nil.
func NewWithFile(name string, level LogLevel, console io.Writer, path string) (*Logger, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("log file %s is a directory", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return newLogger(name, level, console, f), nil
}

func newLogger(name string, level LogLevel, console io.Writer, file *os.File) *Logger {
	if console == nil {
		console = os.Stderr
	}
	var out io.Writer = console
	if file != nil {
		out = io.MultiWriter(console, file)
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level.SlogLevel()})
	return &Logger{
		name:   name,
		level:  level,
		logger: slog.New(handler),
		file:   file,
	}
}

// Name returns the logger name, usually the test set section.
func (l *Logger) Name() string { return l.name }

// Level returns the filter level.
func (l *Logger) Level() LogLevel { return l.level }

// FilePath returns the path of the attached log file, or "" when console only.
func (l *Logger) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

func (l *Logger) log(level LogLevel, messageFmt string, args ...interface{}) {
	if l == nil {
		return
	}
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}
	l.logger.LogAttrs(context.Background(), level.SlogLevel(), msg, slog.String("testset", l.name))
}

// Debug logs a debug message.
func (l *Logger) Debug(messageFmt string, args ...interface{}) {
	l.log(LevelDebug, messageFmt, args...)
}

// Info logs an informational message.
func (l *Logger) Info(messageFmt string, args ...interface{}) {
	l.log(LevelInfo, messageFmt, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(messageFmt string, args ...interface{}) {
	l.log(LevelWarn, messageFmt, args...)
}

// Error logs an error message.
func (l *Logger) Error(messageFmt string, args ...interface{}) {
	l.log(LevelError, messageFmt, args...)
}

// Close releases the log file, if any. Calling Close more than once is safe.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.closeOnce.Do(func() {
		if l.file != nil {
			l.closeErr = l.file.Close()
		}
	})
	return l.closeErr
}
