// Package pattern compiles the user's search expression into an immutable
// SearchPattern shared by every search worker.
//
// Expressions use the github.com/dlclark/regexp2 dialect (lookaround,
// backreferences, atomic groups). Matching flags map onto engine options:
//
//	IgnoreCase -> regexp2.IgnoreCase
//	Multiline  -> regexp2.Multiline   (^ and $ match at line boundaries)
//	DotAll     -> regexp2.Singleline  (. matches a newline)
//
// Without the Unicode flag the shorthand classes \w \W \d \D \s \S and the
// word boundaries \b \B are rewritten to their ASCII definitions before
// compilation, so \w only matches [a-zA-Z0-9_]. With Unicode they keep the
// engine's Unicode semantics.
package pattern
