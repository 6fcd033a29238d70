package display

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fatih/color"
)

// Markers are the strings inserted around each highlighted span.
type Markers struct {
	Start string
	End   string
}

// Span is a half-open byte range [Start, End) inside a line.
type Span struct {
	Start int
	End   int
}

// MarkersFor derives the opening and closing escape sequences of c.
// With colors disabled both markers are empty.
func MarkersFor(c *color.Color, enabled bool) Markers {
	if !enabled {
		return Markers{}
	}
	c.EnableColor()
	start, end, _ := strings.Cut(c.Sprint("\x00"), "\x00")
	return Markers{Start: start, End: end}
}

type insertion struct {
	pos   int
	end   bool
	index int
}

// Highlight wraps every span of line in m. Empty spans and spans that fall
// outside the line are ignored. Spans must not overlap.
//
// All insertion points are computed up front and sorted, so the line is
// copied once from left to right with no offset bookkeeping.
func Highlight(line string, spans []Span, m Markers) string {
	if m.Start == "" && m.End == "" {
		return line
	}

	points := make([]insertion, 0, 2*len(spans))
	for i, s := range spans {
		if s.Start >= s.End || s.Start < 0 || s.End > len(line) {
			continue
		}
		points = append(points,
			insertion{pos: s.Start, index: i},
			insertion{pos: s.End, end: true, index: i},
		)
	}
	if len(points) == 0 {
		return line
	}

	// Ends sort before starts at the same position so adjacent spans
	// close before the next one opens.
	slices.SortFunc(points, func(a, b insertion) int {
		if c := cmp.Compare(a.pos, b.pos); c != 0 {
			return c
		}
		if a.end != b.end {
			if a.end {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.index, b.index)
	})

	var b strings.Builder
	b.Grow(len(line) + len(spans)*(len(m.Start)+len(m.End)))

	last := 0
	for _, p := range points {
		b.WriteString(line[last:p.pos])
		if p.end {
			b.WriteString(m.End)
		} else {
			b.WriteString(m.Start)
		}
		last = p.pos
	}
	b.WriteString(line[last:])

	return b.String()
}

// StripMarkers removes every occurrence of m from s.
func StripMarkers(s string, m Markers) string {
	if m.Start != "" {
		s = strings.ReplaceAll(s, m.Start, "")
	}
	if m.End != "" {
		s = strings.ReplaceAll(s, m.End, "")
	}
	return s
}
