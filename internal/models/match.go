package models

// Match is one occurrence of the search pattern inside a file.
type Match struct {
	Offset int    // Byte offset of the match start from the beginning of the file
	Text   string // Matched text
	Line   int    // 1-based line number of the match start
	Column int    // Byte offset of the match start inside its line
	Left   string // Text between the preceding newline and the match
	Right  string // Text between the match end and the following newline
}

// End returns the byte offset just past the match.
func (m Match) End() int {
	return m.Offset + len(m.Text)
}

// Empty reports whether the match has zero length.
func (m Match) Empty() bool {
	return len(m.Text) == 0
}

// LineText reconstructs the full text of the line(s) the match touches.
func (m Match) LineText() string {
	return m.Left + m.Text + m.Right
}
