package search

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/elijahr/lk/internal/models"
	"github.com/elijahr/lk/internal/pattern"
)

// cancelCheckInterval is how many matches are produced between context checks.
const cancelCheckInterval = 256

// runeText is file content decoded to runes for the pattern engine, with the
// byte offset of each rune so positions can be mapped back.
type runeText struct {
	runes   []rune
	offsets []int // nil when every rune is one byte
	size    int
}

func decodeText(data []byte) runeText {
	ascii := true
	for _, b := range data {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}

	if ascii {
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return runeText{runes: runes, size: len(data)}
	}

	runes := make([]rune, 0, len(data))
	offsets := make([]int, 0, len(data)+1)
	for i := 0; i < len(data); {
		r, n := utf8.DecodeRune(data[i:])
		runes = append(runes, r)
		offsets = append(offsets, i)
		i += n
	}
	offsets = append(offsets, len(data))

	return runeText{runes: runes, offsets: offsets, size: len(data)}
}

// byteOffset converts a rune index into a byte offset.
func (t runeText) byteOffset(i int) int {
	if t.offsets == nil {
		return i
	}
	return t.offsets[i]
}

// ScanContent returns every match of p in data in scan order.
// It stops early with ctx.Err() when ctx is cancelled, and returns the
// engine error (such as a match timeout) together with the matches found so
// far when matching fails.
func ScanContent(ctx context.Context, p *pattern.SearchPattern, data []byte) ([]models.Match, error) {
	text := decodeText(data)

	var matches []models.Match
	line := 1
	counted := 0 // newlines in data[:counted] are already included in line

	for pos := 0; pos <= len(text.runes); {
		if len(matches)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		span, ok, err := p.FindAt(text.runes, pos)
		if err != nil {
			return matches, err
		}
		if !ok {
			break
		}

		start := text.byteOffset(span.Start)
		end := text.byteOffset(span.End)

		line += bytes.Count(data[counted:start], []byte{'\n'})
		counted = start

		lineStart := bytes.LastIndexByte(data[:start], '\n') + 1
		lineEnd := len(data)
		if i := bytes.IndexByte(data[end:], '\n'); i >= 0 {
			lineEnd = end + i
		}

		matches = append(matches, models.Match{
			Offset: start,
			Text:   string(data[start:end]),
			Line:   line,
			Column: start - lineStart,
			Left:   string(data[lineStart:start]),
			Right:  string(data[end:lineEnd]),
		})

		if span.End == span.Start {
			pos = span.Start + 1
		} else {
			pos = span.End
		}
	}

	return matches, nil
}
