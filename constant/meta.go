// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Tonneli is the canonical application identifier used for filesystem paths and CLI branding.
	Tonneli = "tonneli"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the HTTP User-Agent sent to municipal endpoints.
	UserAgent = "tonneli/" + Version
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
