// Package version reports the build identity of the sitegen binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/sitegen/internal/version.Version=v1.2.0".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Commit returns the linked commit, falling back to the VCS revision the Go
// toolchain embedded. Empty when neither is known.
func Commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

// String is the text printed by --version.
func String() string {
	commit := Commit()
	if len(commit) > 12 {
		commit = commit[:12]
	}
	switch {
	case commit != "" && BuildTime != "":
		return fmt.Sprintf("sitegen %s (%s, built %s)", Version, commit, BuildTime)
	case commit != "":
		return fmt.Sprintf("sitegen %s (%s)", Version, commit)
	default:
		return "sitegen " + Version
	}
}
