// Package search runs the search pattern over the files of one task.
//
// Scanner implements executor.TaskRunner: it reads every file of a task,
// skips the ones that cannot be searched and returns a single
// models.DirectoryResult. ScanContent is the per-file matching loop.
//
// Matching restarts at the end of the previous match, so matches never
// overlap. A zero-length match moves the next start one character past the
// match start, which guarantees the loop terminates.
package search
