package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"k-stock-insight/src/models"

	"gopkg.in/natefinch/lumberjack.v2"
)

// -----------------------------------------------------------------------------

// One rotating writer per file. Every component logger on the same file
// shares it so a rotation is seen by all of them.
var (
	writersMu sync.Mutex
	writers   = make(map[string]*lumberjack.Logger)
)

// Logger provides structured logging functionality
type Logger struct {
	name   string
	logger *slog.Logger
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance. With a nil config it logs at INFO
// level to stdout only.
func NewLogger(config *models.MConfig, name string) *Logger {
	var out io.Writer = os.Stdout
	level := slog.LevelInfo

	if config != nil {
		level = ParseLevel(config.LogLevel)
		if config.LogFile != "" {
			out = io.MultiWriter(os.Stdout, fileWriter(config.LogFile))
		}
	}

	return New(out, level, name)
}

// -----------------------------------------------------------------------------

// New creates a Logger writing text records to out.
func New(out io.Writer, level slog.Level, name string) *Logger {
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return &Logger{
		name:   name,
		logger: slog.New(h).With("component", name),
	}
}

// -----------------------------------------------------------------------------

// Named returns a logger sharing the same output under another component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, logger: l.logger.With("component", name)}
}

// -----------------------------------------------------------------------------

// ParseLevel maps the configured level name to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// -----------------------------------------------------------------------------

func fileWriter(filename string) *lumberjack.Logger {
	key := filepath.Clean(filename)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	writersMu.Lock()
	defer writersMu.Unlock()

	if w, ok := writers[key]; ok {
		return w
	}
	if dir := filepath.Dir(key); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot create %s: %v\n", dir, err)
		}
	}
	w := &lumberjack.Logger{
		Filename:   key,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}
	writers[key] = w
	return w
}

// CloseFiles closes every shared log file. Loggers keep working and reopen
// their file on the next write.
func CloseFiles() {
	writersMu.Lock()
	defer writersMu.Unlock()
	for _, w := range writers {
		w.Close()
	}
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), "critical", true)
	os.Exit(1)
}
