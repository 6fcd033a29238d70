package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/elijahr/lk/internal/models"
)

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled resolves a color mode against the destination file. In auto
// mode colors are used only when f is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case "", ColorAuto:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		if os.Getenv("TERM") == "dumb" || f == nil {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid color mode %q, must be one of: auto, always, never", mode)
	}
}

// Renderer prints directory results. It is safe for use by one goroutine.
type Renderer struct {
	out     io.Writer
	header  *color.Color
	lineNo  *color.Color
	markers Markers
}

// NewRenderer creates a Renderer writing to out. Color state lives on the
// Renderer's own color values, never on the fatih/color globals.
func NewRenderer(out io.Writer, colors bool) *Renderer {
	header := color.New(color.FgGreen, color.Bold)
	lineNo := color.New(color.FgYellow)
	if colors {
		header.EnableColor()
		lineNo.EnableColor()
	} else {
		header.DisableColor()
		lineNo.DisableColor()
	}

	return &Renderer{
		out:     out,
		header:  header,
		lineNo:  lineNo,
		markers: MarkersFor(color.New(color.FgRed, color.Bold), colors),
	}
}

// Markers returns the highlight markers used around matches.
func (r *Renderer) Markers() Markers {
	return r.markers
}

// Row is one rendered physical line of a file.
type Row struct {
	Line int    // 1-based line number
	Text string // Line text with highlight markers, without its newline
}

// Render writes one block per matched file: the file path, one
// "<line>: <text>" row per touched line in ascending order, then a blank
// line. An empty result writes nothing.
func (r *Renderer) Render(result *models.DirectoryResult) error {
	if result == nil || result.IsEmpty() {
		return nil
	}

	var b strings.Builder
	for _, file := range result.FileNames() {
		b.WriteString(r.header.Sprint(filepath.Join(result.Directory, file)))
		b.WriteByte('\n')

		for _, row := range r.HighlightRows(result.Matches(file)) {
			b.WriteString(r.lineNo.Sprint(row.Line))
			b.WriteString(": ")
			b.WriteString(row.Text)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

// HighlightRows renders every physical line touched by the matches of one
// file, once each and in ascending order. A match that crosses newlines is
// clipped to each line it covers.
func (r *Renderer) HighlightRows(matches []models.Match) []Row {
	type line struct {
		text  string
		spans []Span
	}
	lines := make(map[int]*line)

	for _, m := range matches {
		start, end := m.Column, m.Column+len(m.Text)
		offset := 0 // start of the current physical line inside LineText

		for i, text := range strings.Split(m.LineText(), "\n") {
			lineStart, lineEnd := offset, offset+len(text)
			offset = lineEnd + 1

			s, e := max(start, lineStart), min(end, lineEnd)
			// Continuation lines appear only when the match reaches into them
			if i > 0 && s >= e {
				continue
			}

			n := m.Line + i
			l, ok := lines[n]
			if !ok {
				l = &line{text: text}
				lines[n] = l
			}
			if s < e {
				l.spans = append(l.spans, Span{Start: s - lineStart, End: e - lineStart})
			}
		}
	}

	numbers := make([]int, 0, len(lines))
	for n := range lines {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)

	rows := make([]Row, 0, len(numbers))
	for _, n := range numbers {
		l := lines[n]
		rows = append(rows, Row{Line: n, Text: Highlight(l.text, l.spans, r.markers)})
	}
	return rows
}

// RenderStats writes a one-line run summary.
func (r *Renderer) RenderStats(stats models.RunStats) error {
	_, err := fmt.Fprintf(r.out, "%s %s in %s %s (%s scanned, %s skipped, %s) in %s\n",
		humanize.Comma(int64(stats.Matches)), english.PluralWord(stats.Matches, "match", "matches"),
		humanize.Comma(int64(stats.FilesMatched)), english.PluralWord(stats.FilesMatched, "file", "files"),
		humanize.Comma(int64(stats.FilesScanned)),
		humanize.Comma(int64(stats.FilesSkipped)),
		humanize.Bytes(uint64(stats.BytesScanned)),
		stats.Elapsed.Round(time.Millisecond),
	)
	return err
}
