// Package version provides build metadata and version information.
package version

import (
	"fmt"
	"log/slog"
	"runtime"
)

var (
	// BuildVersion is the semantic version of the build
	BuildVersion = "0.1.0"

	// BuildCommit is the git commit hash of the build
	BuildCommit = "unknown"

	// BuildDate is the date and time of the build
	BuildDate = "unknown"

	// GoVersion is the version of Go used to build
	GoVersion = runtime.Version()
)

// String returns a formatted version string
func String() string {
	return fmt.Sprintf("geokit version %s (%s) built on %s with %s",
		BuildVersion, BuildCommit, BuildDate, GoVersion)
}

// UserAgent returns the HTTP User-Agent geokit sends to geocoding services.
func UserAgent() string {
	return "geokit/" + BuildVersion
}

// Attr returns the build metadata as a "build" log group.
func Attr() slog.Attr {
	return slog.Group("build",
		slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit),
		slog.String("date", BuildDate),
		slog.String("go", GoVersion),
	)
}
