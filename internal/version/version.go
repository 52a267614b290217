// Package version exposes the gateway build version.
package version

import "runtime/debug"

// Version is overridable at build time via -ldflags.
var Version = "dev"

// Get returns the release version, falling back to module build info
// when no ldflags version was injected.
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
