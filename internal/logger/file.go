package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/elijahr/lk/internal/executor"
	"github.com/elijahr/lk/internal/filelock"
	"github.com/elijahr/lk/internal/models"
)

// DefaultLogDir is the run log directory used when none is configured.
var DefaultLogDir = filepath.Join(".lk", "logs")

// FileLogger appends search events to a timestamped run log and keeps a
// latest.log symlink pointing at the most recent run.
// It is thread-safe and implements the executor.Logger interface.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens
// run-YYYYMMDD-HHMMSS.log inside it and repoints latest.log. The symlink
// swap holds latest.log.lock so concurrent runs never leave it dangling.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if logDir == "" {
		logDir = DefaultLogDir
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	if err := filelock.LockAndSwap(filepath.Base(runFile), filepath.Join(logDir, "latest.log")); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to update latest.log: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== lk Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return allows(fl.logLevel, messageLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message))
}

// LogTaskStart logs a dispatched directory at DEBUG level.
func (fl *FileLogger) LogTaskStart(task models.SearchTask) {
	fl.LogDebug(taskStartMessage(task))
}

// LogTaskComplete logs a joined directory at DEBUG level and its skipped
// files at TRACE level.
func (fl *FileLogger) LogTaskComplete(task models.SearchTask, result *models.DirectoryResult, duration time.Duration) {
	for _, msg := range skipMessages(task, result) {
		fl.LogTrace(msg)
	}
	fl.LogDebug(taskCompleteMessage(task, result, duration))
}

// LogTaskFail logs a failed directory at WARN level, with the failure time.
func (fl *FileLogger) LogTaskFail(err *executor.TaskError) {
	if err == nil {
		return
	}
	fl.LogWarn(fmt.Sprintf("%s (at %s)", err.Error(), err.Timestamp.Format(time.RFC3339)))
}

// LogSummary writes the run totals block. The summary is written at INFO
// level.
func (fl *FileLogger) LogSummary(stats models.RunStats) {
	if !fl.shouldLog("info") {
		return
	}

	var b strings.Builder
	b.WriteString("\n=== Search Summary ===\n")
	b.WriteString(fmt.Sprintf("Directories: %d\n", stats.Directories))
	b.WriteString(fmt.Sprintf("Failed directories: %d\n", stats.FailedTasks))
	b.WriteString(fmt.Sprintf("Files scanned: %d\n", stats.FilesScanned))
	b.WriteString(fmt.Sprintf("Files skipped: %d\n", stats.FilesSkipped))
	b.WriteString(fmt.Sprintf("Files matched: %d\n", stats.FilesMatched))
	b.WriteString(fmt.Sprintf("Bytes scanned: %d\n", stats.BytesScanned))
	b.WriteString(fmt.Sprintf("Matches: %d\n", stats.Matches))
	b.WriteString(fmt.Sprintf("Peak workers: %d\n", stats.PeakWorkers))
	b.WriteString(fmt.Sprintf("Duration: %s\n", formatDuration(stats.Elapsed)))
	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
