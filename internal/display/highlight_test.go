package display

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMarkers = Markers{Start: "<", End: ">"}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		spans []Span
		want  string
	}{
		{"two independent spans", "foo bar foo", []Span{{0, 3}, {8, 11}}, "<foo> bar <foo>"},
		{"adjacent spans", "aabb", []Span{{0, 2}, {2, 4}}, "<aa><bb>"},
		{"whole line", "foo", []Span{{0, 3}}, "<foo>"},
		{"unsorted input", "abcdef", []Span{{4, 6}, {0, 1}}, "<a>bcd<ef>"},
		{"empty span ignored", "abc", []Span{{1, 1}}, "abc"},
		{"out of range ignored", "abc", []Span{{2, 9}}, "abc"},
		{"no spans", "abc", nil, "abc"},
		{"multibyte", "héllo wörld", []Span{{7, 13}}, "héllo <wörld>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.line, tt.spans, testMarkers)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.line, StripMarkers(got, testMarkers))
		})
	}
}

func TestHighlight_EmptyMarkersReturnLine(t *testing.T) {
	assert.Equal(t, "foo bar", Highlight("foo bar", []Span{{0, 3}}, Markers{}))
	assert.Equal(t, "foo bar", StripMarkers("foo bar", Markers{}))
}

func TestHighlight_RoundTripArbitrarySpans(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("ab cd\tXY")
	markers := MarkersFor(color.New(color.FgRed, color.Bold), true)
	require.NotEmpty(t, markers.Start)

	for i := 0; i < 500; i++ {
		line := make([]rune, rng.IntN(40))
		for j := range line {
			line[j] = alphabet[rng.IntN(len(alphabet))]
		}
		text := string(line)

		// Random cut points yield sorted, non-overlapping spans
		var cuts []int
		for j := 0; j < rng.IntN(10); j++ {
			cuts = append(cuts, rng.IntN(len(text)+1))
		}
		slices.Sort(cuts)
		var spans []Span
		for j := 0; j+1 < len(cuts); j += 2 {
			spans = append(spans, Span{Start: cuts[j], End: cuts[j+1]})
		}
		rng.Shuffle(len(spans), func(a, b int) { spans[a], spans[b] = spans[b], spans[a] })

		out := Highlight(text, spans, markers)
		require.Equal(t, text, StripMarkers(out, markers), "line %q spans %v", text, spans)
	}
}

func TestMarkersFor(t *testing.T) {
	m := MarkersFor(color.New(color.FgRed), true)
	assert.Equal(t, "\x1b[31m", m.Start)
	assert.Contains(t, m.End, "\x1b[")

	assert.Equal(t, Markers{}, MarkersFor(color.New(color.FgRed), false))
}
