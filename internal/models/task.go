package models

import (
	"path/filepath"

	"github.com/google/uuid"
)

// SearchTask is the unit of work for one worker: every file of one directory.
// Tasks are created by the directory walker and consumed exactly once.
type SearchTask struct {
	ID          string   // Random identifier used to correlate log lines
	Directory   string   // Directory path as produced by the walker
	Files       []string // Bare file names inside Directory, in walk order
	AllowBinary bool     // Search files containing NUL bytes
}

// NewSearchTask creates a SearchTask with a fresh ID.
func NewSearchTask(dir string, files []string, allowBinary bool) SearchTask {
	return SearchTask{
		ID:          uuid.New().String(),
		Directory:   dir,
		Files:       files,
		AllowBinary: allowBinary,
	}
}

// Path returns the path of one of the task's files.
func (t SearchTask) Path(name string) string {
	return filepath.Join(t.Directory, name)
}

// ShortID returns the first eight characters of the task ID for log output.
func (t SearchTask) ShortID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}
