// Package filelock serializes small shared-file updates, such as repointing
// the latest run log, across concurrent lk processes.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileLock wraps a flock file lock.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock backed by the file at path. The file is created
// on first use.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// WithLock runs fn while holding the lock at lockPath.
func WithLock(lockPath string, fn func() error) error {
	lock := NewFileLock(lockPath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	return fn()
}

// SwapSymlink points link at target. The new link is created under a
// temporary name and renamed over link, so readers see either the old
// target or the new one.
func SwapSymlink(target, link string) error {
	dir := filepath.Dir(link)
	tmp, err := os.CreateTemp(dir, ".tmp-link-*")
	if err != nil {
		return fmt.Errorf("failed to reserve temp name: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	os.Remove(tmpPath)

	if err := os.Symlink(target, tmpPath); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}
	if err := os.Rename(tmpPath, link); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", link, err)
	}
	return nil
}

// LockAndSwap runs SwapSymlink while holding link + ".lock".
func LockAndSwap(target, link string) error {
	return WithLock(link+".lock", func() error {
		return SwapSymlink(target, link)
	})
}
