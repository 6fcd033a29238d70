package pattern

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Options are the matching flags of a SearchPattern.
type Options struct {
	IgnoreCase   bool
	Unicode      bool
	Multiline    bool
	DotAll       bool
	MatchTimeout time.Duration // 0 disables the per-match timeout
}

// RuneSpan is a half-open match range expressed in rune indices.
type RuneSpan struct {
	Start int
	End   int
}

// Len returns the span length in runes.
func (s RuneSpan) Len() int {
	return s.End - s.Start
}

// SearchPattern is a compiled expression plus its options.
// It is never modified after Compile and is safe for concurrent use.
type SearchPattern struct {
	source string
	opts   Options
	re     *regexp2.Regexp
}

// Compile builds a SearchPattern from an expression and its options.
func Compile(expr string, opts Options) (*SearchPattern, error) {
	if opts.MatchTimeout < 0 {
		return nil, fmt.Errorf("match timeout must be >= 0, got %v", opts.MatchTimeout)
	}

	translated := expr
	if !opts.Unicode {
		translated = asciiClasses(expr)
	}

	re, err := regexp2.Compile(translated, engineOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}

	return &SearchPattern{
		source: expr,
		opts:   opts,
		re:     re,
	}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests.
func MustCompile(expr string, opts Options) *SearchPattern {
	p, err := Compile(expr, opts)
	if err != nil {
		panic(err)
	}
	return p
}

func engineOptions(opts Options) regexp2.RegexOptions {
	flags := regexp2.None
	if opts.IgnoreCase {
		flags |= regexp2.IgnoreCase
	}
	if opts.Multiline {
		flags |= regexp2.Multiline
	}
	if opts.DotAll {
		flags |= regexp2.Singleline
	}
	return flags
}

// String returns the expression as the user wrote it.
func (p *SearchPattern) String() string {
	return p.source
}

// Options returns the flags the pattern was compiled with.
func (p *SearchPattern) Options() Options {
	return p.opts
}

// FindAt searches input for the leftmost match starting at or after start.
// Anchors and lookbehind still see the text before start.
// ok is false when no match remains.
func (p *SearchPattern) FindAt(input []rune, start int) (span RuneSpan, ok bool, err error) {
	if start < 0 || start > len(input) {
		return RuneSpan{}, false, nil
	}
	m, err := p.re.FindRunesMatchStartingAt(input, start)
	if err != nil {
		return RuneSpan{}, false, fmt.Errorf("match %q: %w", p.source, err)
	}
	if m == nil {
		return RuneSpan{}, false, nil
	}
	return RuneSpan{Start: m.Index, End: m.Index + m.Length}, true, nil
}

// MatchString reports whether the pattern matches anywhere in s.
func (p *SearchPattern) MatchString(s string) (bool, error) {
	ok, err := p.re.MatchString(s)
	if err != nil {
		return false, fmt.Errorf("match %q: %w", p.source, err)
	}
	return ok, nil
}
