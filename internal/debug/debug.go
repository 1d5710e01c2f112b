package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the debug log file.
type Options struct {
	Level     string
	MaxSizeMB int
	// Writer replaces the rotating file. Used by tests.
	Writer io.Writer
}

var (
	enabled bool
	logFile *lumberjack.Logger
	base    = zerolog.Nop()
	mu      sync.Mutex
)

// Enable turns on debug logging to the specified file.
func Enable(path string, opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	level := zerolog.DebugLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return fmt.Errorf("debug level: %w", err)
		}
		level = parsed
	}

	out := opts.Writer
	if out == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return err
		}
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 5
		}
		logFile = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSize, // megabytes
			MaxBackups: 2,
		}
		out = logFile
	}

	base = zerolog.New(out).Level(level).With().Timestamp().Logger()
	enabled = true

	base.Info().Msg("debug logging enabled")
	return nil
}

// Close closes the debug log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	base = zerolog.Nop()
	enabled = false
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Logger returns a logger tagged with component. It discards everything
// while debugging is off.
func Logger(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With().Str("component", component).Logger()
}

// Log writes a debug message if debugging is enabled.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	base.Debug().Msgf(format, args...)
}

// Timed logs the duration of an operation. Usage:
//
//	defer debug.Timed("operation name")()
func Timed(name string) func() {
	if !IsEnabled() {
		return func() {}
	}

	start := time.Now()
	Log("%s started", name)

	return func() {
		mu.Lock()
		defer mu.Unlock()
		base.Debug().Str("op", name).Dur("elapsed", time.Since(start)).Msg("completed")
	}
}
