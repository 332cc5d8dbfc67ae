// Package buildinfo exposes the version stamped into release binaries.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/schneegans/sponsorwall/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/schneegans/sponsorwall/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/schneegans/sponsorwall/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" \
//	    ./cmd/sponsorwall
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolve fills Commit and Date from the module's VCS stamp when ldflags
// left them unset, which is the case for `go install`.
func Resolve() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none" && len(s.Value) >= 7:
			Commit = s.Value[:7]
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// String returns a one-line summary, used in debug logs.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt:  %s\n", Version, Commit, Date)
}
