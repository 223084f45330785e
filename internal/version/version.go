// Package version holds build metadata injected with -ldflags -X.
package version

import "fmt"

var (
	// Version is the release tag of the gf binary.
	Version = "dev"
	GitSHA  = "unknown"
	// BuildTime is an RFC 3339 timestamp set by the release build.
	BuildTime = "unknown"
)

// String formats the build metadata for `gf version` and `gf --version`.
func String() string {
	sha := GitSHA
	if len(sha) > 12 {
		sha = sha[:12]
	}
	return fmt.Sprintf("%s (git %s, built %s)", Version, sha, BuildTime)
}
