package fileutil

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/elijahr/lk/internal/models"
)

// DebugLogger receives diagnostics about skipped directories.
type DebugLogger interface {
	LogDebug(message string)
}

// WalkOptions configures a Walker.
type WalkOptions struct {
	// Filter prunes directory and file names (nil prunes nothing)
	Filter *PathFilter
	// FollowLinks descends into symbolic links to directories
	FollowLinks bool
	// AllowBinary is copied into every task
	AllowBinary bool
	// Logger is optional
	Logger DebugLogger
}

// Walker enumerates a directory tree as a lazy sequence of search tasks.
type Walker struct {
	root string
	opts WalkOptions
}

// NewWalker creates a Walker rooted at root.
func NewWalker(root string, opts WalkOptions) *Walker {
	return &Walker{root: root, opts: opts}
}

// CheckRoot verifies that root exists, is a directory and can be listed.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	dir, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer dir.Close()

	if _, err := dir.Readdirnames(1); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read directory: %w", err)
	}
	return nil
}

// Tasks returns the walk as an iterator. A directory is yielded before any
// of its subdirectories, and subdirectories are visited in name order.
func (w *Walker) Tasks() iter.Seq[models.SearchTask] {
	return func(yield func(models.SearchTask) bool) {
		stack := []string{w.root}

		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			files, subdirs, err := w.readDir(dir)
			if err != nil {
				w.debugf("skipping directory %s: %v", dir, err)
				continue
			}

			if !yield(models.NewSearchTask(dir, files, w.opts.AllowBinary)) {
				return
			}

			// Push in reverse so the first subdirectory is visited next
			for i := len(subdirs) - 1; i >= 0; i-- {
				stack = append(stack, filepath.Join(dir, subdirs[i]))
			}
		}
	}
}

// readDir splits a directory's entries into file names and names of
// subdirectories to descend into, both with excluded names removed.
func (w *Walker) readDir(dir string) (files, subdirs []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	files = make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if w.opts.Filter.Excluded(name) {
			continue
		}

		switch {
		case entry.IsDir():
			subdirs = append(subdirs, name)
		case entry.Type()&fs.ModeSymlink != 0:
			info, statErr := os.Stat(filepath.Join(dir, name))
			if statErr == nil && info.IsDir() {
				if w.opts.FollowLinks {
					subdirs = append(subdirs, name)
				}
				continue
			}
			// Links to files, and broken links, are files
			files = append(files, name)
		default:
			files = append(files, name)
		}
	}

	return files, subdirs, nil
}

func (w *Walker) debugf(format string, args ...interface{}) {
	if w.opts.Logger != nil {
		w.opts.Logger.LogDebug(fmt.Sprintf(format, args...))
	}
}
