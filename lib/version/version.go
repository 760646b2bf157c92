// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags -X. Builds without them fall back to the VCS
// stamp the Go toolchain embeds.
var (
	// Version is the release version of the storefront.
	Version = "0.1.0-dev"

	// GitCommit is the short commit hash.
	GitCommit = ""

	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty = ""

	// BuildTime is the UTC commit or build timestamp.
	BuildTime = ""
)

// Build is the resolved build stamp.
type Build struct {
	Version string
	Commit  string
	Dirty   bool
	Time    string
}

// Current resolves the build stamp: ldflags values first, then the
// vcs.* settings from debug.ReadBuildInfo, then "unknown".
func Current() Build {
	build := Build{
		Version: Version,
		Commit:  GitCommit,
		Dirty:   GitDirty == "true",
		Time:    BuildTime,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if build.Commit == "" {
					build.Commit = shortCommit(setting.Value)
				}
			case "vcs.time":
				if build.Time == "" {
					build.Time = setting.Value
				}
			case "vcs.modified":
				if GitDirty == "" {
					build.Dirty = setting.Value == "true"
				}
			}
		}
	}
	if build.Commit == "" {
		build.Commit = "unknown"
	}
	if build.Time == "" {
		build.Time = "unknown"
	}
	return build
}

func shortCommit(revision string) string {
	if len(revision) > 7 {
		return revision[:7]
	}
	return revision
}

// String formats the stamp as "0.1.0 (abc1234-dirty, 2026-01-30T10:00:00Z)".
func (build Build) String() string {
	commit := build.Commit
	if build.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", build.Version, commit, build.Time)
}

// Full is the version command's output: the stamp plus the Go version
// and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Current(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent with every ticketing API request, e.g.
// "popuweekend-storefront/0.1.0-dev (abc1234)".
func UserAgent() string {
	build := Current()
	return fmt.Sprintf("popuweekend-storefront/%s (%s)", build.Version, build.Commit)
}
