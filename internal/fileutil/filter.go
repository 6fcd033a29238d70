package fileutil

import (
	"fmt"
	"strings"

	"github.com/elijahr/lk/internal/pattern"
)

// PathFilter decides whether a directory or file name is pruned from the walk.
type PathFilter struct {
	excludes      []*pattern.SearchPattern
	includeHidden bool
}

// NewPathFilter compiles the exclude patterns. includeHidden disables the
// implicit rule that prunes names starting with ".".
func NewPathFilter(excludes []string, includeHidden bool) (*PathFilter, error) {
	f := &PathFilter{includeHidden: includeHidden}
	for _, expr := range excludes {
		p, err := pattern.Compile(expr, pattern.Options{Unicode: true})
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern: %w", err)
		}
		f.excludes = append(f.excludes, p)
	}
	return f, nil
}

// Excluded reports whether name must be skipped.
// A nil filter excludes nothing.
func (f *PathFilter) Excluded(name string) bool {
	if f == nil {
		return false
	}
	if !f.includeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, p := range f.excludes {
		// A pattern that errors (match timeout) does not exclude.
		if ok, err := p.MatchString(name); err == nil && ok {
			return true
		}
	}
	return false
}

// Patterns returns the exclude expressions as written.
func (f *PathFilter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.excludes))
	for i, p := range f.excludes {
		out[i] = p.String()
	}
	return out
}

// HasSeparator reports whether an exclude expression contains a "/".
// Names never contain one, so such a pattern never excludes anything.
func HasSeparator(expr string) bool {
	return strings.Contains(expr, "/")
}
