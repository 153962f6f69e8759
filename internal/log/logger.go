// Package log is the application logger. It wraps logrus behind the small
// package-level API the rest of twilight uses. The terminal belongs to the
// UI while the browser runs, so the default output is discarded and
// callers point it at a file with Configure(WithFile(...)).
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"twilight/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	isDebug = false
	logger  = NewLogger(WithOutput(io.Discard))
)

// Field is a single structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured entries through logrus.
type Logger struct {
	base *logrus.Logger
	file *os.File
}

type options struct {
	out  io.Writer
	file string
	json bool
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends entries to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithFile appends entries to the file at path, creating it if needed.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithJSON switches to the JSON formatter.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// NewLogger creates a logger. If a file option cannot be opened the logger
// falls back to stderr and records the failure as its first entry.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05",
			DisableColors:    true,
			DisableQuote:     true,
			QuoteEmptyFields: true,
		})
	}

	l := &Logger{base: base}
	base.SetOutput(o.out)
	if o.file != "" {
		if err := os.MkdirAll(filepath.Dir(o.file), 0o755); err == nil {
			f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				l.file = f
				base.SetOutput(f)
			} else {
				base.SetOutput(os.Stderr)
				base.WithError(err).Warn("cannot open log file, using stderr")
			}
		}
	}
	return l
}

// Configure replaces the package-level logger. The previous logger's file,
// if any, is closed.
func Configure(opts ...Option) {
	next := NewLogger(opts...)
	mu.Lock()
	prev := logger
	logger = next
	mu.Unlock()
	prev.Close()
}

// Close releases the log file, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetDebug enables or disables debug entries for every logger.
func SetDebug(debug bool) {
	mu.Lock()
	isDebug = debug
	mu.Unlock()
}

func debugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return isDebug
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Entry is a log entry carrying structured fields.
type Entry struct {
	e *logrus.Entry
}

// With returns an entry carrying fields.
func (l *Logger) With(fields ...Field) *Entry {
	return (&Entry{e: logrus.NewEntry(l.base)}).With(fields...)
}

// With adds fields to a copy of the entry.
func (e *Entry) With(fields ...Field) *Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return &Entry{e: e.e.WithFields(lf)}
}

func (e *Entry) Debug(msg string) {
	if debugEnabled() {
		e.e.Debug(msg)
	}
}

func (e *Entry) Debugf(format string, args ...interface{}) {
	if debugEnabled() {
		e.e.Debugf(format, args...)
	}
}

func (e *Entry) Info(msg string)                          { e.e.Info(msg) }
func (e *Entry) Infof(format string, args ...interface{}) { e.e.Infof(format, args...) }
func (e *Entry) Warn(msg string)                          { e.e.Warn(msg) }
func (e *Entry) Warnf(format string, args ...interface{}) { e.e.Warnf(format, args...) }
func (e *Entry) Error(msg string)                         { e.e.Error(msg) }
func (e *Entry) Errorf(format string, args ...interface{}) {
	e.e.Errorf(format, args...)
}

func (l *Logger) Debug(msg string)                          { l.With().Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.With().Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.base.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.base.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.base.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.base.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.base.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.base.Errorf(format, args...) }

// Info logs a formatted message at info level
func Info(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// Debug logs a formatted message when debug logging is enabled
func Debug(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Warn logs a formatted warning
func Warn(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

// LogWithFields returns an entry on the package logger carrying fields.
func LogWithFields(fields ...Field) *Entry {
	return current().With(fields...)
}

// LogWithError returns an entry describing err: its message, kind and the
// path, parameter or index it refers to.
func LogWithError(err error) *Entry {
	if err == nil {
		return LogWithFields(F("error", "<nil>"))
	}

	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var indexErr *errors.IndexError
	if errors.As(err, &indexErr) {
		fields = append(fields, F("index", indexErr.Index()))
	}
	return LogWithFields(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// DefaultFile is the log file used when debug logging is enabled without an
// explicit path.
func DefaultFile() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("twilight-%d.log", os.Getuid()))
}
