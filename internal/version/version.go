// Package version reports the build panelkit is running as.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// BuildInfo is the version block of the health endpoint and `panelkit version`.
type BuildInfo struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"git_commit" yaml:"git_commit"`
	BuildTime time.Time `json:"build_time,omitzero" yaml:"build_time,omitempty"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	Platform  string    `json:"platform" yaml:"platform"`
}

// Set at build time with -ldflags "-X".
var (
	Version   = "dev"
	GitCommit = "unknown"
	// BuildTime is RFC3339.
	BuildTime = "unknown"
)

// Get returns the build information, falling back to the module's embedded
// vcs settings when the ldflags were not set.
func Get() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildTime = t
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildTime = t
				}
			}
		}
	}
	return info
}

// Short returns "version (commit)" with the commit abbreviated.
func (b BuildInfo) Short() string {
	commit := b.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", b.Version, commit)
}

// IsRelease reports whether this is a tagged build.
func (b BuildInfo) IsRelease() bool {
	return b.Version != "dev" && b.Version != ""
}
