package version

import (
	"fmt"
	"runtime"
)

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/delegate/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/delegate/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/delegate/internal/version.Date={{.Date}}
)

// String returns the multi-line version banner printed by "delegate version"
func String() string {
	return fmt.Sprintf("delegate version %s\n  commit: %s\n  built:  %s\n  go:     %s\n",
		Version, Commit, Date, runtime.Version())
}
