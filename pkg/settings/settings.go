// Package settings provides build metadata, runtime parameters, and
// context helpers shared across the bzx CLI and UI packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "bzx"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds parameters for a single execution of the application, resolved
// from CLI flags and environment before the TUI starts.
type Run struct {
	MinLogLevel int8
	NoColor     bool
	Endpoint    string
}

// NewCliParams returns a Run populated with the CLI defaults: info-level
// logging and color output enabled. The endpoint is filled in by the root
// command from flags or environment.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
	}
}
