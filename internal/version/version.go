// Package version holds build-time version metadata, injected via
// -ldflags at release time.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a one-line version summary.
func Info() string {
	return fmt.Sprintf("modelboard %s (commit %s, built %s)", Version, Commit, Date)
}
