package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/elijahr/lk/internal/config"
)

func registerSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	// Pattern
	f.BoolP("ignore-case", "i", false, "Match case-insensitively")
	f.BoolP("unicode", "u", false, `Unicode-aware \w, \d, \s and \b`)
	f.BoolP("multiline", "m", false, "^ and $ match at line boundaries")
	f.BoolP("dot-all", "s", false, ". also matches newline")
	f.Duration("match-timeout", 0, "Give up on a file when one match takes longer (0 = no limit)")

	// Traversal
	f.BoolP("follow-links", "L", false, "Descend into symlinked directories")
	f.BoolP("hidden", "H", false, "Search hidden files and directories")
	f.BoolP("binary", "b", false, "Search files that contain NUL bytes")
	f.StringArrayP("exclude", "e", nil, "Skip files and directories whose name matches PATTERN (repeatable)")

	// Output
	f.String("color", "auto", "Colorize output: auto, always, never")
	f.Bool("no-color", false, "Same as --color=never")
	f.Bool("stats", false, "Print a summary line after the results")
	f.StringArrayP("open-with", "o", nil, "Run CMD on the first matched file of each directory; %s is the path (repeatable)")

	// Scheduling
	f.IntP("workers", "w", 10, "Maximum directories searched at once")
	f.String("join-order", "fifo", "Result order: fifo (start order) or completion")

	// Config and logging
	f.String("config", "", "Path to config file (default: nearest .lk/config.yaml)")
	f.String("log-level", "", "Diagnostic level on stderr: trace, debug, info, warn, error")
	f.String("log-dir", "", "Also write a run log to this directory")
	f.Bool("verbose", false, "Same as --log-level=debug")
}

// flagOverrides collects only the flags that were given on the command line
func flagOverrides(cmd *cobra.Command) (config.FlagOverrides, error) {
	f := cmd.Flags()
	var o config.FlagOverrides

	boolFlag := func(name string) *bool {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetBool(name)
		return &v
	}
	stringFlag := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}

	if cmd.Flags().Changed("color") && cmd.Flags().Changed("no-color") {
		return o, fmt.Errorf("cannot use both --color and --no-color")
	}

	if f.Changed("workers") {
		v, _ := f.GetInt("workers")
		o.Workers = &v
	}
	if f.Changed("match-timeout") {
		v, _ := f.GetDuration("match-timeout")
		o.MatchTimeout = &v
	}

	o.IgnoreCase = boolFlag("ignore-case")
	o.Unicode = boolFlag("unicode")
	o.Multiline = boolFlag("multiline")
	o.DotAll = boolFlag("dot-all")
	o.FollowLinks = boolFlag("follow-links")
	o.Hidden = boolFlag("hidden")
	o.Binary = boolFlag("binary")
	o.Stats = boolFlag("stats")
	o.Color = stringFlag("color")
	o.JoinOrder = stringFlag("join-order")
	o.LogDir = stringFlag("log-dir")
	o.LogLevel = stringFlag("log-level")

	if noColor, _ := f.GetBool("no-color"); noColor {
		never := "never"
		o.Color = &never
	}
	// --verbose only raises the level when no explicit level is given
	if verbose, _ := f.GetBool("verbose"); verbose && o.LogLevel == nil {
		debug := "debug"
		o.LogLevel = &debug
	}

	o.Exclude, _ = f.GetStringArray("exclude")
	o.OpenWith, _ = f.GetStringArray("open-with")

	return o, nil
}

func formatTimeout(d time.Duration) string {
	if d == 0 {
		return "none"
	}
	return d.String()
}
