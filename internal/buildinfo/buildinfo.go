// Package buildinfo reports the plotwin build. Release builds set the
// variables with -ldflags "-X plotwin/internal/buildinfo.Version=...".
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// revision falls back to the VCS stamp embedded by the go tool.
func revision() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

// Short returns the version, or the commit for development builds.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if rev := revision(); rev != "" {
		return rev
	}
	return "dev"
}

// String is the full line printed by -version.
func String() string {
	rev := revision()
	if rev == "" {
		rev = "unknown"
	}
	return fmt.Sprintf("plotwin %s (%s, %s)", Version, rev, Date)
}
