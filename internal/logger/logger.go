package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFile is where the persistent debug log is written.
const DefaultFile = "logs/run.log"

// Options controls logger initialisation.
type Options struct {
	Level    string // console level: debug, info, warn, error
	FilePath string // debug-level log file; empty disables the file writer
	Console  io.Writer
}

var (
	defaultLogger zerolog.Logger
	logFile       *os.File
	filePath      string
	once          sync.Once
	mu            sync.Mutex
)

// Init initializes the default logger with a console writer only.
// It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		defaultLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.InfoLevel).
			With().Timestamp().Logger()
	})
}

// Setup replaces the default logger with a console writer at opts.Level and,
// when opts.FilePath is set, a file writer that records everything at debug.
func Setup(opts Options) error {
	Init()

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}},
			Level:  level,
		},
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		filePath = ""
	}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		filePath = opts.FilePath
		writers = append(writers, f)
	}

	defaultLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	return nil
}

// FilePath returns the path of the persistent log file, if any.
func FilePath() string {
	mu.Lock()
	defer mu.Unlock()
	return filePath
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Get returns the initialized default logger.
func Get() *zerolog.Logger {
	Init()
	mu.Lock()
	defer mu.Unlock()
	l := defaultLogger
	return &l
}

// With returns a child logger carrying the given key/value pairs.
func With(args ...any) zerolog.Logger {
	return Get().With().Fields(args).Logger()
}

// Info logs an informational message using the default logger.
func Info(msg string, args ...any) {
	Get().Info().Fields(args).Msg(msg)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	Get().Warn().Fields(args).Msg(msg)
}

// Error logs an error message using the default logger.
func Error(msg string, err error, args ...any) {
	Get().Error().Err(err).Fields(args).Msg(msg)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	Get().Debug().Fields(args).Msg(msg)
}
