// Package logger provides the console logger for list-files.
//
// Diagnostics about entries that could not be listed are always written,
// prefixed with the program name the way ls-like tools report them.
// Leveled messages (trace through error) are filtered by the configured
// level and carry a level tag. Output is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger writes diagnostics and leveled messages to a writer.
// Color output is enabled when the writer is a terminal and NO_COLOR is unset.
type ConsoleLogger struct {
	writer      io.Writer
	program     string
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "warn".
func NewConsoleLogger(writer io.Writer, program, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		program:     program,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a terminal file that should get color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}

	if color.NoColor && (f == os.Stdout || f == os.Stderr) {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "warn"
	}
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelWarn
	}
}

// Enabled reports whether messages at level would be written.
func (cl *ConsoleLogger) Enabled(level string) bool {
	return logLevelToInt(normalizeLogLevel(level)) >= logLevelToInt(cl.logLevel)
}

// Diagnostic writes "program: message" regardless of the log level.
func (cl *ConsoleLogger) Diagnostic(message string) {
	if cl.writer == nil {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	prefix := cl.program + ":"
	if cl.colorOutput {
		prefix = color.New(color.FgRed, color.Bold).Sprint(prefix)
	}

	_, _ = fmt.Fprintf(cl.writer, "%s %s\n", prefix, message)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("trace", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("debug", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("info", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("warn", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("error", message)
}

// logWithLevel writes "program: [LEVEL] message" if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level, message string) {
	if cl.writer == nil || !cl.Enabled(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	tag := strings.ToUpper(level)
	if cl.colorOutput {
		tag = levelColor(level).Sprint(tag)
	}

	_, _ = fmt.Fprintf(cl.writer, "%s: [%s] %s\n", cl.program, tag, message)
}

// levelColor returns the color used for a level tag.
func levelColor(level string) *color.Color {
	switch level {
	case "trace":
		return color.New(color.FgHiBlack)
	case "debug":
		return color.New(color.FgCyan)
	case "info":
		return color.New(color.FgBlue)
	case "warn":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
