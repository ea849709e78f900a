package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	corelogger "github.com/kilianp07/ecoamp/core/logger"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

// Options configures the process-wide log output.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives logs in addition to stdout and is rotated.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	output io.Writer = os.Stdout
	level            = "info"
	rotor  *lumberjack.Logger
)

// Configure sets the output and level used by loggers created afterwards.
// It returns a function closing the rotated file, if any.
func Configure(o Options) func() error {
	mu.Lock()
	defer mu.Unlock()
	if o.Level != "" {
		level = strings.ToLower(o.Level)
	}
	if rotor != nil {
		_ = rotor.Close()
		rotor = nil
	}
	output = os.Stdout
	if o.File != "" {
		rotor = &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
		}
		output = io.MultiWriter(os.Stdout, rotor)
	}
	r := rotor
	return func() error {
		if r == nil {
			return nil
		}
		return r.Close()
	}
}

// New returns a Logger for the given component. The format is selected via
// the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}

func current() (io.Writer, string) {
	mu.RLock()
	defer mu.RUnlock()
	return output, level
}
