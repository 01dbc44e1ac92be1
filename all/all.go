// Package all imports all supported sources.
//
// Import this package for its side effects to register all ecosystems:
//
//	import (
//		"github.com/git-pkgs/versionbadge"
//		_ "github.com/git-pkgs/versionbadge/all"
//	)
//
//	// Now all ecosystems are available
//	ecosystems := versionbadge.SupportedSources()
//	// ["gem", "github", "pypi", "winget"]
package all

import (
	_ "github.com/git-pkgs/versionbadge/internal/github"
	_ "github.com/git-pkgs/versionbadge/internal/pypi"
	_ "github.com/git-pkgs/versionbadge/internal/rubygems"
	_ "github.com/git-pkgs/versionbadge/internal/winget"
)
