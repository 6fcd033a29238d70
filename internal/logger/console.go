// Package logger provides the diagnostic loggers used during a search.
//
// Loggers report scheduling events (task start, completion, failure, run
// summary) and free-form leveled messages from the walker and scanner.
// Search results never go through a logger. Implementations are thread-safe.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/elijahr/lk/internal/executor"
	"github.com/elijahr/lk/internal/models"
)

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer.
// It supports log level filtering to control message verbosity.
// Level names are colored when the writer is a terminal.
type ConsoleLogger struct {
	writer   io.Writer
	logLevel string
	mutex    sync.Mutex
	colors   *colorScheme
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:   writer,
		logLevel: normalizeLogLevel(logLevel),
		colors:   newColorScheme(isTerminal(writer)),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// NO_COLOR disables colors regardless of the terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return allows(cl.logLevel, messageLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), cl.colors.level(level), message)
}

// LogTaskStart logs a dispatched directory at DEBUG level.
func (cl *ConsoleLogger) LogTaskStart(task models.SearchTask) {
	cl.LogDebug(taskStartMessage(task))
}

// LogTaskComplete logs a joined directory at DEBUG level and each of its
// skipped files at TRACE level.
func (cl *ConsoleLogger) LogTaskComplete(task models.SearchTask, result *models.DirectoryResult, duration time.Duration) {
	for _, msg := range skipMessages(task, result) {
		cl.LogTrace(msg)
	}
	cl.LogDebug(taskCompleteMessage(task, result, duration))
}

// LogTaskFail logs a failed directory at WARN level.
func (cl *ConsoleLogger) LogTaskFail(err *executor.TaskError) {
	if err == nil {
		return
	}
	cl.LogWarn(err.Error())
}

// LogSummary logs the run totals at INFO level.
// Format: "[HH:MM:SS] [INFO] Searched <n> directories: <m> matches in <f> files (...)"
func (cl *ConsoleLogger) LogSummary(stats models.RunStats) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	matches := fmt.Sprintf("%d matches", stats.Matches)
	if stats.Matches > 0 {
		matches = cl.colors.success.Sprint(matches)
	}
	failed := fmt.Sprintf("%d failed", stats.FailedTasks)
	if stats.FailedTasks > 0 {
		failed = cl.colors.fail.Sprint(failed)
	}

	cl.LogInfo(fmt.Sprintf("%s %d directories: %s in %d files (%d scanned, %d skipped, %s, %s), peak %d workers, %s",
		cl.colors.bold.Sprint("Searched"), stats.Directories, matches, stats.FilesMatched,
		stats.FilesScanned, stats.FilesSkipped, humanize.Bytes(uint64(stats.BytesScanned)),
		failed, stats.PeakWorkers, formatDuration(stats.Elapsed)))
}

func taskStartMessage(task models.SearchTask) string {
	return fmt.Sprintf("task %s: searching %s (%d files)", task.ShortID(), task.Directory, len(task.Files))
}

func taskCompleteMessage(task models.SearchTask, result *models.DirectoryResult, duration time.Duration) string {
	return fmt.Sprintf("task %s: %s done, %d matches in %d files (%d skipped) in %s",
		task.ShortID(), task.Directory, result.Stats.Matches, len(result.FileNames()),
		result.Stats.FilesSkipped, formatDuration(duration))
}

func skipMessages(task models.SearchTask, result *models.DirectoryResult) []string {
	msgs := make([]string, 0, len(result.Skipped))
	for _, skip := range result.Skipped {
		msgs = append(msgs, fmt.Sprintf("skipping %s: %s", task.Path(skip.Name), skip.Reason))
	}
	return msgs
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string) {}
func (n *NoOpLogger) LogDebug(string) {}
func (n *NoOpLogger) LogInfo(string) {}
func (n *NoOpLogger) LogWarn(string) {}
func (n *NoOpLogger) LogError(string) {}
func (n *NoOpLogger) LogTaskStart(models.SearchTask) {}
func (n *NoOpLogger) LogTaskComplete(models.SearchTask, *models.DirectoryResult, time.Duration) {}
func (n *NoOpLogger) LogTaskFail(*executor.TaskError) {}
func (n *NoOpLogger) LogSummary(models.RunStats) {}
