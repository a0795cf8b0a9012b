// Package build holds version information for streamio binaries.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/haivivi/streamio/cmd/streamio/internal/build.Version=v1.0.0 \
//	  -X github.com/haivivi/streamio/cmd/streamio/internal/build.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/haivivi/streamio/cmd/streamio/internal/build.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds fall back to the VCS revision the toolchain stamps
// into the binary, when one is present.
package build

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns a formatted version string.
func String() string {
	return fmt.Sprintf("streamio %s (%s) built %s %s/%s",
		Version, commit(), Date, runtime.GOOS, runtime.GOARCH)
}

// commit prefers the ldflags value over the stamped VCS revision.
func commit() string {
	if Commit != "unknown" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return Commit
}
