// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Mprisync is the canonical application identifier used for filesystem paths and CLI branding.
	Mprisync = "mprisync"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with release checks.
	UserAgent = Mprisync + "/" + Version
)
