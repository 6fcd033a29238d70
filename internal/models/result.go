package models

import (
	"sort"
	"time"
)

// LineMatches maps 1-based line numbers to the matches starting on that line,
// ordered by ascending column.
type LineMatches map[int][]Match

// TaskStats counts the work done by a single task.
type TaskStats struct {
	FilesScanned int   // Files read and searched
	FilesSkipped int   // Files skipped (unreadable, binary, not regular)
	BytesScanned int64 // Bytes read from searched files
	Matches      int   // Total matches in the task
}

// SkippedFile records a file that could not be searched and why.
type SkippedFile struct {
	Name   string
	Reason string
}

// DirectoryResult aggregates the matches of one directory.
// It is built by exactly one worker and is not modified after it is returned.
type DirectoryResult struct {
	Directory string
	Files     map[string]LineMatches
	Stats     TaskStats
	Skipped   []SkippedFile // In scan order

	order []string
}

// NewDirectoryResult creates an empty result for a directory.
func NewDirectoryResult(dir string) *DirectoryResult {
	return &DirectoryResult{
		Directory: dir,
		Files:     make(map[string]LineMatches),
	}
}

// AddMatch records a match for a file. Matches must be added in scan order.
func (r *DirectoryResult) AddMatch(file string, m Match) {
	lines, ok := r.Files[file]
	if !ok {
		lines = make(LineMatches)
		r.Files[file] = lines
		r.order = append(r.order, file)
	}
	lines[m.Line] = append(lines[m.Line], m)
	r.Stats.Matches++
}

// AddSkip records a file that was not searched.
func (r *DirectoryResult) AddSkip(file string, err error) {
	r.Skipped = append(r.Skipped, SkippedFile{Name: file, Reason: err.Error()})
	r.Stats.FilesSkipped++
}

// FileNames returns the names of files with at least one match, in the order
// they were scanned.
func (r *DirectoryResult) FileNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// FirstFile returns the first matched file name, or "" when there is none.
func (r *DirectoryResult) FirstFile() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

// LineNumbers returns the matched line numbers of a file in ascending order.
func (r *DirectoryResult) LineNumbers(file string) []int {
	lines := r.Files[file]
	numbers := make([]int, 0, len(lines))
	for n := range lines {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// Matches returns every match of a file in scan order.
func (r *DirectoryResult) Matches(file string) []Match {
	var all []Match
	for _, n := range r.LineNumbers(file) {
		all = append(all, r.Files[file][n]...)
	}
	return all
}

// IsEmpty reports whether no file in the directory matched.
func (r *DirectoryResult) IsEmpty() bool {
	return len(r.order) == 0
}

// RunStats is the aggregate of a whole search run.
type RunStats struct {
	Directories  int           // Tasks that produced a result
	FailedTasks  int           // Tasks that failed and produced no result
	FilesScanned int           // Files read and searched
	FilesSkipped int           // Files skipped
	FilesMatched int           // Files with at least one match
	BytesScanned int64         // Bytes read
	Matches      int           // Total matches
	PeakWorkers  int           // Highest number of simultaneously running workers
	Elapsed      time.Duration // Wall-clock time of the run
}

// Add folds a directory result into the run totals.
func (s *RunStats) Add(r *DirectoryResult) {
	s.Directories++
	s.FilesScanned += r.Stats.FilesScanned
	s.FilesSkipped += r.Stats.FilesSkipped
	s.BytesScanned += r.Stats.BytesScanned
	s.Matches += r.Stats.Matches
	s.FilesMatched += len(r.order)
}
