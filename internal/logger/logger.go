// Package logger provides levelled logging for duxt-mcp.
// Warnings and errors are always written; debug and info messages
// only appear when verbose mode is enabled via the --verbose flag.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	verbose bool
	base    = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: "duxt-mcp",
	})
	l.SetLevel(log.WarnLevel)
	return l
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		base.SetLevel(log.DebugLevel)
	} else {
		base.SetLevel(log.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	base.Debugf("=== %s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Errorf(format, args...)
}
