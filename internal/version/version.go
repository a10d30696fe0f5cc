// Package version exposes the build metadata stamped in by the linker.
package version

// Set via -ldflags "-X kbd-designer/internal/version.Version=v1.2.3" and
// friends; the defaults cover a plain go build.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
