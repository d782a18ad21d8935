// Package version exposes build metadata injected at link time.
package version

import "fmt"

// Build metadata, overridden via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the full version line for the version subcommand.
func String() string {
	return fmt.Sprintf("diffdrift %s (commit: %s, built: %s)", Version, Commit, Date)
}
