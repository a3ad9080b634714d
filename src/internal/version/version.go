// FILE: proflog/src/internal/version/version.go
package version

import "fmt"

// Build metadata, injected at compile time via -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String returns the full version line shown by -version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

// Short returns just the version tag.
func Short() string {
	return Version
}
