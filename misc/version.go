// Package misc keeps build time information.
package misc

// Set by the linker: -X stylegen/misc.version=... -X stylegen/misc.gitHash=...
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "stylegen"

// GetVersion returns application version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit the binary was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns application name used for logs and reports.
func GetAppName() string {
	return appName
}
