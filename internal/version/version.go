// Package version reports devconsole build information.
package version

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "0.1.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

const unknown = "unknown"

// Release channels reported by Info.Channel.
const (
	ChannelRelease     = "release"
	ChannelPrerelease  = "prerelease"
	ChannelDevelopment = "development"
)

var buildDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Info is a parsed snapshot of the build variables.
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
	SemVer    *semver.Version
}

// Current parses the build variables. It fails when Version is not a
// semantic version.
func Current() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		SemVer:    sv,
	}, nil
}

// Validate reports whether Version is a semantic version.
func Validate() error {
	_, err := Current()
	return err
}

// Base returns major.minor.patch, or the raw Version when it does not parse.
func Base() string {
	info, err := Current()
	if err != nil {
		return Version
	}
	return fmt.Sprintf("%d.%d.%d", info.SemVer.Major(), info.SemVer.Minor(), info.SemVer.Patch())
}

// Channel classifies the build. Builds without commit or date stamps are
// development builds regardless of their version.
func (i *Info) Channel() string {
	switch {
	case !known(i.GitCommit) || !known(i.BuildDate):
		return ChannelDevelopment
	case i.SemVer.Prerelease() != "":
		return ChannelPrerelease
	default:
		return ChannelRelease
	}
}

// BuildTime parses BuildDate. ok is false when the date is missing or in
// no recognised layout.
func (i *Info) BuildTime() (t time.Time, ok bool) {
	if !known(i.BuildDate) {
		return time.Time{}, false
	}
	for _, layout := range buildDateLayouts {
		if t, err := time.Parse(layout, i.BuildDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Short returns a one-line version string.
func Short() string {
	info, err := Current()
	if err != nil {
		return fmt.Sprintf("devconsole v%s (invalid version)", Version)
	}

	parts := []string{"devconsole v" + info.Version}
	if known(info.GitCommit) {
		commit := info.GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		parts = append(parts, "commit "+commit)
	}
	if known(info.BuildDate) {
		parts = append(parts, "built "+info.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// Detailed returns one line per build attribute, headed by Short.
func Detailed() []string {
	info, err := Current()
	if err != nil {
		return []string{Short(), "Error: " + err.Error()}
	}

	lines := []string{
		Short(),
		"Channel: " + info.Channel(),
		"Git Commit: " + info.GitCommit,
	}
	if t, ok := info.BuildTime(); ok {
		lines = append(lines, "Build Date: "+t.UTC().Format(time.RFC3339))
	} else {
		lines = append(lines, "Build Date: "+info.BuildDate)
	}
	if meta := info.SemVer.Metadata(); meta != "" {
		lines = append(lines, "Build Metadata: "+meta)
	}
	return append(lines,
		"Go Version: "+info.GoVersion,
		"Platform: "+info.Platform,
	)
}

func known(s string) bool {
	return s != "" && s != unknown
}
