package search

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/elijahr/lk/internal/models"
	"github.com/elijahr/lk/internal/pattern"
)

var (
	// ErrBinary is returned for files containing a NUL byte when binary
	// search is disabled.
	ErrBinary = errors.New("binary file")
	// ErrNotRegular is returned for devices, pipes, sockets and directories.
	ErrNotRegular = errors.New("not a regular file")
)

// Scanner searches the files of a task with one shared pattern.
// It only returns data; skipped files are reported in the result.
type Scanner struct {
	pattern *pattern.SearchPattern
}

// NewScanner creates a Scanner.
func NewScanner(p *pattern.SearchPattern) *Scanner {
	return &Scanner{pattern: p}
}

// Run scans every file of the task in order. File-level failures skip the
// file and are recorded in DirectoryResult.Skipped; only cancellation aborts
// the task, in which case no result is returned.
func (s *Scanner) Run(ctx context.Context, task models.SearchTask) (*models.DirectoryResult, error) {
	result := models.NewDirectoryResult(task.Directory)

	for _, name := range task.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := ReadSearchable(task.Path(name), task.AllowBinary)
		if err != nil {
			result.AddSkip(name, err)
			continue
		}

		matches, err := ScanContent(ctx, s.pattern, data)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			result.AddSkip(name, err)
			continue
		}

		result.Stats.FilesScanned++
		result.Stats.BytesScanned += int64(len(data))
		for _, m := range matches {
			result.AddMatch(name, m)
		}
	}

	return result, nil
}

// ReadSearchable reads a file's full contents, refusing non-regular files
// and, unless allowBinary is set, files that contain a NUL byte.
func ReadSearchable(path string, allowBinary bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegular
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if !allowBinary && isBinary(data) {
		return nil, ErrBinary
	}
	return data, nil
}

func isBinary(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return false
}
