package cmd

import (
	"time"

	"github.com/elijahr/lk/internal/executor"
	"github.com/elijahr/lk/internal/models"
)

// searchLogger is what every lk logger provides: scheduler events plus
// leveled messages for the walker, scanner and dispatcher.
type searchLogger interface {
	executor.Logger
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// multiLogger implements searchLogger by delegating to multiple loggers
type multiLogger struct {
	loggers []searchLogger
}

func (ml *multiLogger) LogTaskStart(task models.SearchTask) {
	for _, l := range ml.loggers {
		l.LogTaskStart(task)
	}
}

func (ml *multiLogger) LogTaskComplete(task models.SearchTask, result *models.DirectoryResult, duration time.Duration) {
	for _, l := range ml.loggers {
		l.LogTaskComplete(task, result, duration)
	}
}

func (ml *multiLogger) LogTaskFail(err *executor.TaskError) {
	for _, l := range ml.loggers {
		l.LogTaskFail(err)
	}
}

func (ml *multiLogger) LogSummary(stats models.RunStats) {
	for _, l := range ml.loggers {
		l.LogSummary(stats)
	}
}

func (ml *multiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

func (ml *multiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}
