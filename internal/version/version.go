// Package version reports the mpnkit release and the binary it runs from.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Version is the mpnkit release. Family files gate on it with a `requires`
// constraint, so it must stay valid semver.
const Version = "0.3.0"

// Commit and Date are stamped by release builds, e.g.
//
//	-ldflags "-X github.com/standardbeagle/mpnkit/internal/version.Commit=$(git rev-parse --short HEAD)"
//
// Local builds leave them empty and fall back to the VCS stamp Go embeds.
var (
	Commit string
	Date   string
)

// Build describes the running binary.
type Build struct {
	Version   string
	Commit    string
	Modified  bool
	Date      string
	GoVersion string
}

func (b Build) String() string {
	commit := b.Commit
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("mpnkit %s (commit %s, built %s, %s)", b.Version, commit, b.Date, b.GoVersion)
}

var (
	current     Build
	currentOnce sync.Once
)

// Current returns the description of the running binary.
func Current() Build {
	currentOnce.Do(func() {
		current = readBuild(debug.ReadBuildInfo)
	})
	return current
}

func readBuild(read func() (*debug.BuildInfo, bool)) Build {
	b := Build{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if info, ok := read(); ok {
		if info.GoVersion != "" {
			b.GoVersion = info.GoVersion
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.Date == "" {
		b.Date = "development"
	}
	return b
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// Info returns the release version.
func Info() string {
	return Version
}

// FullInfo returns the one-line build description printed by `mpnkit version`.
func FullInfo() string {
	return Current().String()
}
