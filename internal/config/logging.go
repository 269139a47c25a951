package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // application-wide structured logging
var Logger zerolog.Logger

//nolint:gochecknoglobals // tracks the global logger's file handle
var logFileHandle *os.File

//nolint:gochecknoglobals // guards the global logger state
var logMu sync.RWMutex

// LogOptions select where log records go.
type LogOptions struct {
	Level string
	// File receives every record when set.
	File string
	// Console writes human-readable records to stderr. TUI commands turn it
	// off so records never land on the alternate screen.
	Console bool
}

// InitLogger rebuilds the global Logger. An unparsable level falls back to
// info. It returns an error if the log file cannot be opened.
func InitLogger(opts LogOptions) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	closeLogFileLocked()

	var writers []io.Writer
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return err
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		logFileHandle = f
		writers = append(writers, f)
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	Logger = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

// CloseLogFile closes the log file, if any, and leaves a discarding logger
// at the same level.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

func closeLogFileLocked() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
		Logger = zerolog.New(io.Discard).Level(Logger.GetLevel())
	}
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

func init() {
	_ = InitLogger(LogOptions{Level: "info", Console: true})
}
