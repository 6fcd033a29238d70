package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/elijahr/lk/internal/models"
)

func logAt(l interface {
	LogTrace(string)
	LogDebug(string)
	LogInfo(string)
	LogWarn(string)
	LogError(string)
}, level, message string) {
	switch level {
	case "trace":
		l.LogTrace(message)
	case "debug":
		l.LogDebug(message)
	case "info":
		l.LogInfo(message)
	case "warn":
		l.LogWarn(message)
	case "error":
		l.LogError(message)
	}
}

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	for ci, configured := range Levels {
		for mi, messageLevel := range Levels {
			name := configured + " logs " + messageLevel
			shouldAppear := mi >= ci
			t.Run(name, func(t *testing.T) {
				buf := &bytes.Buffer{}
				logger := NewConsoleLogger(buf, configured)

				logAt(logger, messageLevel, messageLevel+" msg")

				contains := strings.Contains(buf.String(), messageLevel+" msg")
				if shouldAppear && !contains {
					t.Errorf("Expected %s message at %s level, output: %q", messageLevel, configured, buf.String())
				}
				if !shouldAppear && contains {
					t.Errorf("Expected %s message to be filtered at %s level, output: %q", messageLevel, configured, buf.String())
				}
			})
		}
	}
}

// TestTaskEventsRespectLogLevel verifies task events are debug and the summary is info
func TestTaskEventsRespectLogLevel(t *testing.T) {
	tests := []struct {
		logLevel    string
		wantTasks   bool
		wantSummary bool
	}{
		{logLevel: "trace", wantTasks: true, wantSummary: true},
		{logLevel: "debug", wantTasks: true, wantSummary: true},
		{logLevel: "info", wantTasks: false, wantSummary: true},
		{logLevel: "warn", wantTasks: false, wantSummary: false},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)

			task := models.NewSearchTask("src/pkg", []string{"a.go"}, false)
			logger.LogTaskStart(task)
			logger.LogTaskComplete(task, models.NewDirectoryResult("src/pkg"), time.Millisecond)
			logger.LogSummary(models.RunStats{Directories: 1})

			output := buf.String()
			if got := strings.Contains(output, "src/pkg"); got != tt.wantTasks {
				t.Errorf("task events present = %v, want %v; output: %q", got, tt.wantTasks, output)
			}
			if got := strings.Contains(output, "Searched 1 directories"); got != tt.wantSummary {
				t.Errorf("summary present = %v, want %v; output: %q", got, tt.wantSummary, output)
			}
		})
	}
}

// TestLogLevelEdgeCases verifies handling of invalid/unknown log levels
func TestLogLevelEdgeCases(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel string
	}{
		{name: "empty string defaults to info", logLevel: "", expectedLevel: "info"},
		{name: "unknown level defaults to info", logLevel: "unknown", expectedLevel: "info"},
		{name: "uppercase level normalized", logLevel: "DEBUG", expectedLevel: "debug"},
		{name: "mixed case normalized", logLevel: " WaRn ", expectedLevel: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewConsoleLogger(&bytes.Buffer{}, tt.logLevel)
			if logger.logLevel != tt.expectedLevel {
				t.Errorf("Expected level %q, got %q", tt.expectedLevel, logger.logLevel)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "DEBUG", " info ", "warn", "error"} {
		if !ValidLevel(level) {
			t.Errorf("Expected %q to be valid", level)
		}
	}
	for _, level := range []string{"", "verbose", "fatal"} {
		if ValidLevel(level) {
			t.Errorf("Expected %q to be invalid", level)
		}
	}
}
