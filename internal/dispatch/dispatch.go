// Package dispatch runs user command templates against matched files.
package dispatch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/elijahr/lk/internal/models"
)

// Placeholder is replaced by the quoted file path in a command template.
const Placeholder = "%s"

// Dispatcher starts one command for one path.
type Dispatcher interface {
	Dispatch(template, path string) error
}

// WarnLogger receives failures of commands that were started.
type WarnLogger interface {
	LogWarn(message string)
}

// ShellDispatcher runs templates through the system shell without waiting
// for them. Each started command is reaped by its own goroutine.
type ShellDispatcher struct {
	WorkDir string    // Working directory for commands (empty = current dir)
	Stdout  io.Writer // Command stdout (nil = os.Stderr)
	Stderr  io.Writer // Command stderr (nil = os.Stderr)
	Logger  WarnLogger

	wg sync.WaitGroup
}

// NewShellDispatcher creates a ShellDispatcher. logger may be nil.
func NewShellDispatcher(workDir string, logger WarnLogger) *ShellDispatcher {
	return &ShellDispatcher{WorkDir: workDir, Logger: logger}
}

// Dispatch expands template with path and starts it via sh -c (cmd /C on
// Windows). It returns once the process has started.
func (d *ShellDispatcher) Dispatch(template, path string) error {
	command := Expand(template, path)

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	if d.WorkDir != "" {
		cmd.Dir = d.WorkDir
	}
	cmd.Stdout = writerOr(d.Stdout, os.Stderr)
	cmd.Stderr = writerOr(d.Stderr, os.Stderr)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", command, err)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := cmd.Wait(); err != nil && d.Logger != nil {
			d.Logger.LogWarn(fmt.Sprintf("command %q failed: %v", command, err))
		}
	}()
	return nil
}

// Wait blocks until every started command has exited.
func (d *ShellDispatcher) Wait() {
	d.wg.Wait()
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

// Expand substitutes the quoted path for every placeholder in template.
// A template without a placeholder gets " %s" appended first.
func Expand(template, path string) string {
	if !strings.Contains(template, Placeholder) {
		template += " " + Placeholder
	}
	return strings.ReplaceAll(template, Placeholder, Quote(path))
}

// Quote makes path a single shell word.
func Quote(path string) string {
	if runtime.GOOS == "windows" {
		return `"` + strings.ReplaceAll(path, `"`, `""`) + `"`
	}
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// DispatchFirst runs every template once against the first matched file of
// result. Failures to start are passed to onErr and do not stop the others.
func DispatchFirst(d Dispatcher, templates []string, result *models.DirectoryResult, onErr func(error)) {
	if d == nil || len(templates) == 0 || result == nil {
		return
	}
	first := result.FirstFile()
	if first == "" {
		return
	}

	path := filepath.Join(result.Directory, first)
	for _, template := range templates {
		if err := d.Dispatch(template, path); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
