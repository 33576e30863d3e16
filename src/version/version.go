// Package version holds the build-time version string reported by the CLI.
package version

// VERSION is the current release version of this module.
const VERSION = "0.1.0"
