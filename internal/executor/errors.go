package executor

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInterrupted is returned by Scheduler.Run when the run context is
// cancelled before every task was joined.
var ErrInterrupted = errors.New("search interrupted")

// TaskError describes a task that finished without producing a result.
// It includes context about which task failed and when.
type TaskError struct {
	TaskID    string    // ID of the task that failed
	Directory string    // Directory the task was searching
	Message   string    // Human-readable error message
	Err       error     // Underlying error (optional)
	Timestamp time.Time // When the failure was observed
}

// NewTaskError creates a new TaskError with the current timestamp.
func NewTaskError(id, dir, msg string, err error) *TaskError {
	return &TaskError{
		TaskID:    id,
		Directory: dir,
		Message:   msg,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface for TaskError.
func (e *TaskError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("task %s (%s): %s", e.TaskID, e.Directory, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// IsTaskError checks if the error is or wraps a TaskError.
func IsTaskError(err error) bool {
	if err == nil {
		return false
	}
	var te *TaskError
	return errors.As(err, &te)
}

// IsInterrupted checks if the error is or wraps ErrInterrupted.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}
