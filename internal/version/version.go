// Package version carries the build version, overridden at link time via
// -ldflags "-X github.com/atelier-sh/atelier/internal/version.Version=...".
package version

var Version = "dev"
