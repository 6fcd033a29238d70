package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahr/lk/internal/models"
	"github.com/elijahr/lk/internal/pattern"
)

func scan(t *testing.T, expr string, opts pattern.Options, content string) []models.Match {
	t.Helper()
	matches, err := ScanContent(context.Background(), pattern.MustCompile(expr, opts), []byte(content))
	require.NoError(t, err)
	return matches
}

func TestScanContent_TwoMatchesOnOneLine(t *testing.T) {
	matches := scan(t, "foo", pattern.Options{}, "foo bar foo")

	require.Len(t, matches, 2)
	assert.Equal(t, models.Match{Offset: 0, Text: "foo", Line: 1, Column: 0, Left: "", Right: " bar foo"}, matches[0])
	assert.Equal(t, models.Match{Offset: 8, Text: "foo", Line: 1, Column: 8, Left: "foo bar ", Right: ""}, matches[1])
	for _, m := range matches {
		assert.Equal(t, "foo bar foo", m.LineText())
	}
}

func TestScanContent_LinesAndColumns(t *testing.T) {
	content := "alpha\nbeta gamma\n\ndelta beta\n"

	matches := scan(t, "beta", pattern.Options{}, content)

	require.Len(t, matches, 2)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, 0, matches[0].Column)
	assert.Equal(t, " gamma", matches[0].Right)
	assert.Equal(t, 4, matches[1].Line)
	assert.Equal(t, 6, matches[1].Column)
	assert.Equal(t, "delta ", matches[1].Left)
	assert.Equal(t, "", matches[1].Right)
	for _, m := range matches {
		assert.Equal(t, m.Line, strings.Count(content[:m.Offset], "\n")+1)
		assert.Equal(t, m.Text, content[m.Offset:m.End()])
	}
}

func TestScanContent_ZeroLengthMatches(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		content string
		want    []int // match offsets
		texts   []string
	}{
		{"star on non-matching text", "a*", "bbb", []int{0, 1, 2, 3}, []string{"", "", "", ""}},
		{"star mixed", "a*", "baa", []int{0, 1, 3}, []string{"", "aa", ""}},
		{"empty pattern", "", "ab", []int{0, 1, 2}, []string{"", "", ""}},
		{"lookahead", "(?=b)", "abab", []int{1, 3}, []string{"", ""}},
		{"empty content", "a*", "", []int{0}, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := scan(t, tt.expr, pattern.Options{}, tt.content)

			offsets := make([]int, len(matches))
			texts := make([]string, len(matches))
			for i, m := range matches {
				offsets[i] = m.Offset
				texts[i] = m.Text
			}
			assert.Equal(t, tt.want, offsets)
			assert.Equal(t, tt.texts, texts)
		})
	}
}

func TestScanContent_NonOverlapping(t *testing.T) {
	matches := scan(t, "aa", pattern.Options{}, "aaaaa")

	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Offset)
	assert.Equal(t, 2, matches[1].Offset)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].Offset, matches[i-1].End())
	}
}

func TestScanContent_AnchorsDoNotRestartAtPosition(t *testing.T) {
	assert.Len(t, scan(t, "^foo", pattern.Options{}, "foofoo"), 1)
	assert.Len(t, scan(t, "^foo", pattern.Options{Multiline: true}, "foofoo\nfoo"), 2)
}

func TestScanContent_MultibyteOffsets(t *testing.T) {
	content := "héllo wörld\nçava wörld"

	matches := scan(t, "wörld", pattern.Options{}, content)

	require.Len(t, matches, 2)
	assert.Equal(t, strings.Index(content, "wörld"), matches[0].Offset)
	assert.Equal(t, len("héllo "), matches[0].Column)
	assert.Equal(t, "héllo ", matches[0].Left)
	assert.Equal(t, 2, matches[1].Line)
	assert.Equal(t, len("çava "), matches[1].Column)
	for _, m := range matches {
		assert.Equal(t, "wörld", content[m.Offset:m.End()])
	}
}

func TestScanContent_MultilineMatch(t *testing.T) {
	content := "first\nfoo\nbar end\nlast"

	matches := scan(t, `foo\nbar`, pattern.Options{}, content)

	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, 2, m.Line)
	assert.Equal(t, "", m.Left)
	assert.Equal(t, " end", m.Right)
	assert.Equal(t, "foo\nbar end", m.LineText())
}

func TestScanContent_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScanContent(ctx, pattern.MustCompile("x", pattern.Options{}), []byte("xxx"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanContent_Idempotent(t *testing.T) {
	content := strings.Repeat("foo bar baz\nqux foo\n", 50)
	p := pattern.MustCompile(`foo|ba.`, pattern.Options{})

	first, err := ScanContent(context.Background(), p, []byte(content))
	require.NoError(t, err)
	second, err := ScanContent(context.Background(), p, []byte(content))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 200)
}
