package build

import "runtime/debug"

// Variables injected via ldflags at build time.
var (
	Version = "DEV"
	Date    = "" // YYYY-MM-DD, empty for dev builds
)

func init() {
	if Version == "DEV" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" && info.Main.Version != "" {
			Version = info.Main.Version
		}
	}
}
