package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/aalvaropc/pwstasks/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("pwstasks %s (commit=%s, date=%s)", Version, Commit, Date)
}
