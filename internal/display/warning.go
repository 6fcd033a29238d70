package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related patterns or paths (optional)
	ItemLabel  string   // Heading for Items, "Affected" by default
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when colors is set
func (w Warning) Display(out io.Writer, colors bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	// Add message with 4-space indent if present
	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		label := w.ItemLabel
		if label == "" {
			label = "Affected"
		}
		b.WriteString(fmt.Sprintf("    %s:\n", label))

		for i, item := range w.Items {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, item))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	yellow := color.New(color.FgYellow)
	if colors {
		yellow.EnableColor()
	} else {
		yellow.DisableColor()
	}
	fmt.Fprint(out, yellow.Sprint(b.String()))
}

// WarnPathExcludes creates a warning for exclude patterns that contain a
// path separator. Exclude rules only ever see a single path component.
func WarnPathExcludes(patterns []string) Warning {
	return Warning{
		Title:      "Exclude patterns contain a path separator",
		Message:    "Exclude patterns are matched against single file and directory names, so these can never match.",
		Items:      patterns,
		ItemLabel:  "Patterns",
		Suggestion: "Exclude the last path component instead, e.g. --exclude node_modules",
	}
}
