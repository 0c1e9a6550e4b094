// Package version holds build version information.
package version

const (
	// Name is the application name shown in the window title.
	Name = "Vessel Studio"

	// Version is the semantic version of this build.
	Version = "0.3.0"
)
