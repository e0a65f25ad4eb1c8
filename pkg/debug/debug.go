// Package debug provides warning and conditional debug logging for ptour.
//
// Warnings are always written. Debug messages are written only when the
// PTOUR_DEBUG environment variable is set:
//
//	PTOUR_DEBUG=1 ptour --run-once
//
// Output goes to stderr by default. The TUI redirects it to a log file with
// SetOutput so messages do not corrupt the alternate screen.
//
// Usage:
//
//	import "github.com/vanderheijden86/ptour/pkg/debug"
//
//	func loadThing(path string) {
//	    debug.Log("loading %s", path)
//	    if err := load(path); err != nil {
//	        debug.Warn("failed to load %s: %v", path, err)
//	    }
//	}
package debug

import (
	"io"
	"log"
	"os"
	"sync"
	"time"
)

var (
	mu sync.Mutex
	// enabled is true when PTOUR_DEBUG env var is set
	enabled bool
	// logger writes debug messages with a [PTOUR_DEBUG] prefix
	logger *log.Logger
	// warnLogger writes warnings with a [PTOUR_WARN] prefix
	warnLogger *log.Logger
)

func init() {
	enabled = os.Getenv("PTOUR_DEBUG") != ""
	setOutputLocked(os.Stderr)
}

func setOutputLocked(w io.Writer) {
	logger = log.New(w, "[PTOUR_DEBUG] ", log.Ltime|log.Lmicroseconds)
	warnLogger = log.New(w, "[PTOUR_WARN] ", log.Ltime)
}

// SetOutput redirects both debug and warning output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutputLocked(w)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// Warn writes a warning. Warnings are written regardless of PTOUR_DEBUG.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	warnLogger.Printf(format, args...)
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf("=== %s ===", name)
}
