// Package logger emits the pipeline's diagnostic stream. Everything goes
// to one writer (stderr by default) and is suppressed entirely unless
// verbose mode is switched on, so a quiet build prints nothing but the
// final report.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	verbose atomic.Bool

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetVerbose switches the diagnostic stream on or off.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose reports whether the diagnostic stream is on.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput redirects the diagnostic stream; tests capture it this way.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Debug logs fine-grained per-document progress.
func Debug(format string, args ...any) {
	emit("debug", format, args...)
}

// Info logs build milestones.
func Info(format string, args ...any) {
	emit("info", format, args...)
}

// Warn logs degraded-but-continuing conditions, such as a failing cache.
func Warn(format string, args ...any) {
	emit("warn", format, args...)
}

// Section marks the start of a named pipeline phase.
func Section(name string) {
	if !verbose.Load() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "\n── %s ──\n", name)
}

func emit(level, format string, args ...any) {
	if !verbose.Load() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, level+": "+format+"\n", args...)
}
