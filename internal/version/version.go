package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Version information for the errfmt CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with major, minor and patch in distinct colors.
func Colored() string {
	return Colorize(Version)
}

// Colorize colors a semantic version string. Pre-release and build
// suffixes stay uncolored; strings that are not x.y.z are returned as is.
// Output is plain when fatih/color has coloring disabled.
func Colorize(v string) string {
	core, suffix := v, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// Commit returns GitCommit, falling back to the VCS revision the Go
// toolchain stamped into the binary.
func Commit() string {
	if c := strings.TrimSpace(GitCommit); c != "" {
		return c
	}
	return buildSetting("vcs.revision")
}

// Date returns BuildDate, falling back to the VCS commit time.
func Date() string {
	if d := strings.TrimSpace(BuildDate); d != "" {
		return d
	}
	return buildSetting("vcs.time")
}

func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
