// Package display renders search results and user-facing messages.
//
// A Renderer is built once from the resolved color setting and owns every
// color it uses, so nothing here reads or writes the fatih/color globals:
//
//	colors, _ := display.ColorEnabled("auto", os.Stdout)
//	r := display.NewRenderer(os.Stdout, colors)
//	r.Render(result)
//
// Each matched file produces one block: the file path, a
// "<line>: <text>" row per matched line with every match highlighted, and a
// blank line.
//
// # Highlighting
//
// Highlight collects the start and end insertion point of every span,
// sorts them, and copies the line once. StripMarkers undoes it exactly:
//
//	out := display.Highlight("foo bar foo", spans, m)
//	display.StripMarkers(out, m) == "foo bar foo"
//
// # Warnings
//
//	display.WarnPathExcludes([]string{"vendor/cache"}).Display(os.Stderr, colors)
package display
