package logger

import (
	"github.com/fatih/color"
)

// colorScheme holds the colors a ConsoleLogger uses.
// Level names: TRACE grey, DEBUG cyan, INFO blue, WARN yellow, ERROR red.
// Summary counts: green for matches, red for failures.
type colorScheme struct {
	levels  map[string]*color.Color
	success *color.Color
	fail    *color.Color
	bold    *color.Color
}

// newColorScheme creates the standard scheme. Every color is forced on or
// off so the result does not depend on whether stdout is a terminal.
func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		levels: map[string]*color.Color{
			"TRACE": color.New(color.FgHiBlack),
			"DEBUG": color.New(color.FgCyan),
			"INFO":  color.New(color.FgBlue),
			"WARN":  color.New(color.FgYellow),
			"ERROR": color.New(color.FgRed),
		},
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		bold:    color.New(color.Bold),
	}

	all := []*color.Color{s.success, s.fail, s.bold}
	for _, c := range s.levels {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// level returns the colored level name.
func (s *colorScheme) level(name string) string {
	if c, ok := s.levels[name]; ok {
		return c.Sprint(name)
	}
	return name
}
