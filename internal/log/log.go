// Package log provides the console logger used for informational and error
// output. Matches and confirmations go through the search reporter; this
// logger is the separate channel for warnings and errors, with thread-safe
// writes.
//
// Gating follows the CLI surface: informational messages are suppressed by
// --silent, per-entry errors are shown only with --show-errors, and fatal
// errors are never suppressed.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Logger writes gated messages to a single writer. The zero value is not
// usable; construct with New.
type Logger struct {
	mu         sync.Mutex
	w          io.Writer
	showInfo   bool
	showErrors bool

	yellow *color.Color
	red    *color.Color
}

// New creates a Logger writing to w. showInfo enables Infof, showErrors
// enables Warnf and Errorf; Fatalf is always emitted. When colorize is
// false all output is plain text regardless of the terminal.
func New(w io.Writer, showInfo, showErrors, colorize bool) *Logger {
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)
	if !colorize {
		yellow.DisableColor()
		red.DisableColor()
	}
	return &Logger{
		w:          w,
		showInfo:   showInfo,
		showErrors: showErrors,
		yellow:     yellow,
		red:        red,
	}
}

func (l *Logger) printf(prefix *color.Color, tag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s%s\n", prefix.Sprint(tag), fmt.Sprintf(format, args...))
}

// Infof writes an informational message.
func (l *Logger) Infof(format string, args ...any) {
	if !l.showInfo {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format+"\n", args...)
}

// Warnf writes a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	if !l.showErrors {
		return
	}
	l.printf(l.yellow, "warning: ", format, args...)
}

// Errorf writes a non-fatal error message.
func (l *Logger) Errorf(format string, args ...any) {
	if !l.showErrors {
		return
	}
	l.printf(l.red, "error: ", format, args...)
}

// Fatalf writes an error that must reach the user. It is never filtered,
// regardless of the silent or show-errors gating.
func (l *Logger) Fatalf(format string, args ...any) {
	l.printf(l.red, "error: ", format, args...)
}
