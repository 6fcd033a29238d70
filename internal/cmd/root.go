package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for lk
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lk [flags] PATTERN [DIRECTORY]",
		Short: "Search a directory tree for a regular expression, in parallel",
		Long: `lk walks DIRECTORY (default ".") and searches every file for PATTERN.

Each directory is searched by its own worker, with at most --workers
directories in flight. Matches are printed per file as
"<line>: <text>" with every match on the line highlighted.

Exclude patterns are regular expressions matched against each file and
directory name; excluded directories are never entered. Hidden entries and
binary files (any file containing a NUL byte) are skipped unless asked for.

Configuration is loaded from .lk/config.yaml (searched upward from the
current directory) or --config. CLI flags override configuration file
settings.

Examples:
  lk 'func \w+\(' ./internal
  lk -i todo -e vendor -e '\.min\.js$'
  lk --stats -w 32 'panic\('
  lk -o 'code -g %s' 'deprecated'`,
		Version: Version,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runSearch,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error and picks the exit code
		SilenceErrors: true,
	}

	registerSearchFlags(cmd)

	return cmd
}
