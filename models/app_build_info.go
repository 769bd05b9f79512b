package models

import "fmt"

const buildInfoUnknown = "N/A"

// AppBuildInfo is the build metadata stamped into a binary with
// -ldflags "-X main.buildVersion=...".
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo fills unset values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// Stamped reports whether a version was set at link time.
func (a AppBuildInfo) Stamped() bool {
	return a.Version != buildInfoUnknown
}

// String renders the banner printed on startup.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", a.Version, a.Date, a.Commit)
}

func orUnknown(value string) string {
	if value == "" {
		return buildInfoUnknown
	}
	return value
}
